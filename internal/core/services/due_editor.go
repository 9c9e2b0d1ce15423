package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/dto"
	"github.com/budgetbook/budget_book_app/internal/middleware"
)

// EditDue updates a due's amount, description, date, or type. A pending due
// only adjusts the aggregate totals; a settled due propagates the change into
// its linked ledger entry and the destination balance.
// Implements portssvc.DueSvcFacade
func (s *dueService) EditDue(ctx context.Context, userID string, dueID int64, req dto.EditDueRequest) (*domain.Due, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateDueFields(req.Amount, req.Description, req.DueDate, req.DueType); err != nil {
		return nil, err
	}

	tx, err := s.dueRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin due edit: %w", err)
	}
	defer s.dueRepo.Rollback(ctx, tx)

	due, err := s.findOwnedDueForUpdate(ctx, tx, userID, dueID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if due.DueStatus == domain.DuePending {
		err = s.editPendingDue(ctx, tx, due, req, now)
	} else {
		err = s.editSettledDue(ctx, tx, due, req, now)
	}
	if err != nil {
		return nil, err
	}

	if err := s.dueRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit edit of due %d: %w", dueID, err)
	}

	logger.Info("Due edited", slog.Int64("due_id", dueID), slog.String("status", string(due.DueStatus)))
	return due, nil
}

// editPendingDue moves the aggregate totals from the old (type, amount) pair
// to the new one and rewrites the due row. No ledger entry exists yet.
func (s *dueService) editPendingDue(ctx context.Context, tx pgx.Tx, due *domain.Due, req dto.EditDueRequest, now time.Time) error {
	var deltas domain.BalanceDeltas
	if req.DueType != due.DueType {
		deltas = domain.AggregateDelta(due.DueType, due.Amount.Neg()).
			Add(domain.AggregateDelta(req.DueType, req.Amount))
	} else {
		deltas = domain.AggregateDelta(due.DueType, req.Amount.Sub(due.Amount))
	}

	if !deltas.IsZero() {
		if err := s.userRepo.ApplyBalanceDeltas(ctx, tx, due.UserID, deltas, due.UserID, now); err != nil {
			return fmt.Errorf("failed to move due aggregates: %w", err)
		}
	}

	return s.persistEditedDue(ctx, tx, due, req, now)
}

// editSettledDue rewrites a settled due together with its ledger entry.
// The aggregates stay untouched: settlement already consumed them. Flipping
// the type is only legal for account destinations; need/want entries are
// always outflows and a receivable cannot live there.
func (s *dueService) editSettledDue(ctx context.Context, tx pgx.Tx, due *domain.Due, req dto.EditDueRequest, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !due.IsSettled() {
		return fmt.Errorf("%w: settled due %d has no transfer reference", apperrors.ErrConflict, due.DueID)
	}
	dest, err := s.destinations.For(*due.TransferAccountType)
	if err != nil {
		return fmt.Errorf("failed to resolve destination %q: %w", *due.TransferAccountType, err)
	}
	if req.DueType != due.DueType && !dest.AcceptsReceivable() {
		return fmt.Errorf("%w: cannot change the type of a due settled into %s", apperrors.ErrConflict, dest.Kind())
	}

	user, err := s.userRepo.FindUserByIDForUpdate(ctx, tx, due.UserID)
	if err != nil {
		return fmt.Errorf("failed to lock user %s for due edit: %w", due.UserID, err)
	}
	if req.DueType == domain.Payable && dest.RequiresFunds() && req.Amount.GreaterThan(dest.AvailableFunds(user)) {
		return fmt.Errorf("%w: edited amount %s exceeds %s balance %s",
			apperrors.ErrInsufficientBalance, req.Amount, dest.Kind(), dest.AvailableFunds(user))
	}

	oldEffect := domain.SettlementBalanceEffect(due.DueType, due.Amount)
	newEffect := domain.SettlementBalanceEffect(req.DueType, req.Amount)

	update := domain.LedgerEntryUpdate{
		Amount:    req.Amount,
		EntryName: req.Description,
		EntryType: domain.SettlementEntryType(req.DueType),
		DueType:   req.DueType,
		UpdatedBy: due.UserID,
		UpdatedAt: now,
	}
	found, err := dest.UpdateEntry(ctx, tx, *due.TransferAccountID, due.UserID, update)
	if err != nil {
		return fmt.Errorf("failed to update settlement ledger entry %d: %w", *due.TransferAccountID, err)
	}

	if found {
		if deltas := dest.SettlementDeltas(newEffect.Sub(oldEffect)); !deltas.IsZero() {
			if err := s.userRepo.ApplyBalanceDeltas(ctx, tx, due.UserID, deltas, due.UserID, now); err != nil {
				return fmt.Errorf("failed to apply edit balance deltas: %w", err)
			}
		}
	} else {
		logger.Warn("Linked ledger entry missing, skipping destination leg of edit",
			slog.Int64("due_id", due.DueID),
			slog.Int64("entry_id", *due.TransferAccountID),
			slog.String("destination", string(dest.Kind())),
		)
	}

	return s.persistEditedDue(ctx, tx, due, req, now)
}

// persistEditedDue writes the new field values to the due row, last in the
// transaction so every failure path leaves the stored due untouched.
func (s *dueService) persistEditedDue(ctx context.Context, tx pgx.Tx, due *domain.Due, req dto.EditDueRequest, now time.Time) error {
	due.Amount = req.Amount
	due.Description = req.Description
	due.DueDate = req.DueDate
	due.DueType = req.DueType
	due.LastUpdatedAt = now
	due.LastUpdatedBy = due.UserID

	if err := s.dueRepo.UpdateDueFields(ctx, tx, *due); err != nil {
		return fmt.Errorf("failed to update due %d: %w", due.DueID, err)
	}
	return nil
}
