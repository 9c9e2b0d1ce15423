package services

import (
	"context"
	"fmt"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
)

type ledgerService struct {
	ledgerRepo portsrepo.LedgerReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerReader) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListEntries(ctx context.Context, userID string, kind domain.TransferAccountType, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown ledger kind %q", apperrors.ErrValidation, kind)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByUser(ctx, kind, userID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", kind, err)
	}

	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
