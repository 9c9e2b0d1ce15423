package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
	"github.com/budgetbook/budget_book_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves read access to the per-category ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to ledger listings.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/:kind", h.listEntries)
	}
}

// listEntries godoc
// @Summary List ledger entries
// @Description Retrieves a paginated list of the user's entries for one ledger category (savings, miscellaneous, need, or want).
// @Tags ledger
// @Produce json
// @Param kind path string true "Ledger kind: SAVINGS, MISCELLANEOUS, NEED, or WANT"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/{kind} [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	kind := domain.TransferAccountType(strings.ToUpper(c.Param("kind")))

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), userID, kind, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list ledger entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
