package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
	"github.com/budgetbook/budget_book_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseBookHandler handles HTTP requests related to monthly expense books.
type expenseBookHandler struct {
	bookService portssvc.ExpenseBookSvcFacade
}

func newExpenseBookHandler(bs portssvc.ExpenseBookSvcFacade) *expenseBookHandler {
	return &expenseBookHandler{bookService: bs}
}

// registerExpenseBookRoutes registers routes related to expense books.
func registerExpenseBookRoutes(rg *gin.RouterGroup, bookService portssvc.ExpenseBookSvcFacade) {
	h := newExpenseBookHandler(bookService)

	books := rg.Group("/expense-books")
	{
		books.GET("", h.listBooks)
		books.GET("/current", h.getCurrentBook)
		books.GET("/:month", h.getBookForMonth)
	}
}

// getCurrentBook godoc
// @Summary Get the current month's expense book
// @Description Returns this month's spendings total and budget allocations, creating the book from the current income/split snapshot when absent.
// @Tags expense-books
// @Produce json
// @Success 200 {object} dto.ExpenseBookResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expense-books/current [get]
func (h *expenseBookHandler) getCurrentBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	book, err := h.bookService.GetCurrentBook(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		} else {
			logger.Error("Failed to get current expense book", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve expense book"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseBookResponse(book))
}

// getBookForMonth godoc
// @Summary Get the expense book for a month
// @Tags expense-books
// @Produce json
// @Param month path string true "Month in YYYY-MM format"
// @Success 200 {object} dto.ExpenseBookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expense-books/{month} [get]
func (h *expenseBookHandler) getBookForMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	month, err := time.Parse("2006-01", c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month, expected YYYY-MM"})
		return
	}

	book, err := h.bookService.GetBookForMonth(c.Request.Context(), userID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No expense book for that month"})
		} else {
			logger.Error("Failed to get expense book", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve expense book"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseBookResponse(book))
}

// listBooks godoc
// @Summary List expense books
// @Description Retrieves the user's expense books, most recent month first.
// @Tags expense-books
// @Produce json
// @Param limit query int false "Page size (default 12)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListExpenseBooksResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expense-books [get]
func (h *expenseBookHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListExpenseBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	books, err := h.bookService.ListBooks(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to list expense books", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list expense books"})
		return
	}

	c.JSON(http.StatusOK, dto.ListExpenseBooksResponse{Books: dto.ToExpenseBookResponses(books)})
}
