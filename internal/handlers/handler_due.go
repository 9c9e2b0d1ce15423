package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
	"github.com/budgetbook/budget_book_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dueHandler handles HTTP requests related to dues.
type dueHandler struct {
	dueService portssvc.DueSvcFacade
}

func newDueHandler(ds portssvc.DueSvcFacade) *dueHandler {
	return &dueHandler{dueService: ds}
}

// RegisterDueRoutes registers routes related to dues.
func RegisterDueRoutes(rg *gin.RouterGroup, dueService portssvc.DueSvcFacade) {
	h := newDueHandler(dueService)

	dues := rg.Group("/dues")
	{
		dues.POST("", h.createDue)
		dues.GET("", h.listDues)
		dues.GET("/:dueID", h.getDue)
		dues.PUT("/:dueID", h.editDue)
		dues.DELETE("/:dueID", h.deleteDue)
		dues.POST("/:dueID/status", h.setDueStatus)
	}
}

func parseDueID(c *gin.Context) (int64, bool) {
	dueID, err := strconv.ParseInt(c.Param("dueID"), 10, 64)
	if err != nil || dueID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid due ID"})
		return 0, false
	}
	return dueID, true
}

// respondDueError maps service errors from due operations onto HTTP statuses.
func respondDueError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Due not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// createDue godoc
// @Summary Create a new due
// @Description Records a pending payable or receivable due for the logged-in user.
// @Tags dues
// @Accept json
// @Produce json
// @Param due body dto.CreateDueRequest true "Due details"
// @Success 201 {object} dto.DueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues [post]
func (h *dueHandler) createDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	due, err := h.dueService.CreateDue(c.Request.Context(), userID, req)
	if err != nil {
		respondDueError(c, logger, err, "Failed to create due")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDueResponse(due))
}

// listDues godoc
// @Summary List dues
// @Description Retrieves a paginated list of the logged-in user's dues, optionally filtered by status.
// @Tags dues
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Param status query string false "Filter by PENDING or PAID"
// @Success 200 {object} dto.ListDuesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues [get]
func (h *dueHandler) listDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListDuesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.dueService.ListDues(c.Request.Context(), userID, params)
	if err != nil {
		respondDueError(c, logger, err, "Failed to list dues")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getDue godoc
// @Summary Get a due by ID
// @Tags dues
// @Produce json
// @Param dueID path int true "Due ID"
// @Success 200 {object} dto.DueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/{dueID} [get]
func (h *dueHandler) getDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	dueID, ok := parseDueID(c)
	if !ok {
		return
	}

	due, err := h.dueService.GetDueByID(c.Request.Context(), userID, dueID)
	if err != nil {
		respondDueError(c, logger, err, "Failed to retrieve due")
		return
	}

	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// setDueStatus godoc
// @Summary Toggle a due's settlement status
// @Description Settles a pending due into a destination account or reverts a paid due back to pending.
// @Tags dues
// @Accept json
// @Produce json
// @Param dueID path int true "Due ID"
// @Param status body dto.SetDueStatusRequest true "Target status and, when settling, the destination"
// @Success 200 {object} dto.DueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/{dueID}/status [post]
func (h *dueHandler) setDueStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	dueID, ok := parseDueID(c)
	if !ok {
		return
	}

	var req dto.SetDueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetDueStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	due, err := h.dueService.SetDueStatus(c.Request.Context(), userID, dueID, req)
	if err != nil {
		respondDueError(c, logger, err, "Failed to change due status")
		return
	}

	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// editDue godoc
// @Summary Edit a due
// @Description Amends a due's amount, description, due date, or type. Settled dues propagate the change into their ledger entry.
// @Tags dues
// @Accept json
// @Produce json
// @Param dueID path int true "Due ID"
// @Param due body dto.EditDueRequest true "New field values"
// @Success 200 {object} dto.DueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/{dueID} [put]
func (h *dueHandler) editDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	dueID, ok := parseDueID(c)
	if !ok {
		return
	}

	var req dto.EditDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditDue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	due, err := h.dueService.EditDue(c.Request.Context(), userID, dueID, req)
	if err != nil {
		respondDueError(c, logger, err, "Failed to edit due")
		return
	}

	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// deleteDue godoc
// @Summary Delete a due
// @Description Removes a due, reversing its settlement side effects first.
// @Tags dues
// @Produce json
// @Param dueID path int true "Due ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/{dueID} [delete]
func (h *dueHandler) deleteDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	dueID, ok := parseDueID(c)
	if !ok {
		return
	}

	if err := h.dueService.DeleteDue(c.Request.Context(), userID, dueID); err != nil {
		respondDueError(c, logger, err, "Failed to delete due")
		return
	}

	c.Status(http.StatusNoContent)
}
