package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
	"github.com/budgetbook/budget_book_app/internal/middleware"
	"github.com/jackc/pgx/v5"
)

const maxDueDescriptionLen = 100

var (
	ErrDueAlreadyInStatus  = errors.New("due is already in the requested status")
	ErrDestinationRequired = errors.New("destination account is required to settle a due")
	ErrDueNotSettled       = errors.New("due has not been settled yet")
)

// dueService implements the due lifecycle: creation, the settlement state
// machine, edits, and removal. Every mutating operation runs inside a single
// database transaction with the due row and the user row locked, so balance
// deltas are always computed from current persisted state.
type dueService struct {
	dueRepo      portsrepo.DueRepositoryWithTx
	userRepo     portsrepo.UserRepositoryFacade
	destinations portsrepo.DestinationRegistry
}

// NewDueService creates a new DueService.
func NewDueService(dueRepo portsrepo.DueRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade, destinations portsrepo.DestinationRegistry) portssvc.DueSvcFacade {
	return &dueService{
		dueRepo:      dueRepo,
		userRepo:     userRepo,
		destinations: destinations,
	}
}

// Ensure dueService implements the portssvc.DueSvcFacade interface
var _ portssvc.DueSvcFacade = (*dueService)(nil)

// validateDueFields runs the shared field validation for create and edit.
func validateDueFields(amount decimal.Decimal, description string, dueDate time.Time, dueType domain.DueType) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: due amount must be positive", apperrors.ErrValidation)
	}
	if len(description) < 1 || len(description) > maxDueDescriptionLen {
		return fmt.Errorf("%w: due description must be between 1 and %d characters", apperrors.ErrValidation, maxDueDescriptionLen)
	}
	if !dueDate.After(time.Now()) {
		return fmt.Errorf("%w: due date must be in the future", apperrors.ErrValidation)
	}
	if !dueType.Valid() {
		return fmt.Errorf("%w: unknown due type %q", apperrors.ErrValidation, dueType)
	}
	return nil
}

// findOwnedDueForUpdate loads and locks a due, enforcing ownership.
// Dues of other users surface as ErrNotFound to obscure their existence.
func (s *dueService) findOwnedDueForUpdate(ctx context.Context, tx pgx.Tx, userID string, dueID int64) (*domain.Due, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.dueRepo.FindDueByIDForUpdate(ctx, tx, dueID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find due for update", slog.Int64("due_id", dueID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	if due.UserID != userID {
		logger.Warn("Due belongs to a different user", slog.Int64("due_id", dueID))
		return nil, apperrors.ErrNotFound
	}
	return due, nil
}

// CreateDue records a new pending due and grows the matching aggregate.
// Implements portssvc.DueSvcFacade
func (s *dueService) CreateDue(ctx context.Context, userID string, req dto.CreateDueRequest) (*domain.Due, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateDueFields(req.Amount, req.Description, req.DueDate, req.DueType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	due := domain.Due{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate,
		DueType:     req.DueType,
		DueStatus:   domain.DuePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.dueRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin due creation: %w", err)
	}
	defer s.dueRepo.Rollback(ctx, tx)

	dueID, err := s.dueRepo.SaveDue(ctx, tx, due)
	if err != nil {
		logger.Error("Failed to save due", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save due: %w", err)
	}

	// A pending due is tracked on the matching aggregate total.
	if err := s.userRepo.ApplyBalanceDeltas(ctx, tx, userID, domain.AggregateDelta(due.DueType, due.Amount), userID, now); err != nil {
		logger.Error("Failed to grow due aggregate", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update due aggregate: %w", err)
	}

	if err := s.dueRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit due creation: %w", err)
	}

	due.DueID = dueID
	logger.Info("Due created", slog.Int64("due_id", dueID), slog.String("due_type", string(due.DueType)))
	return &due, nil
}

// GetDueByID retrieves a single due owned by the user.
// Implements portssvc.DueSvcFacade
func (s *dueService) GetDueByID(ctx context.Context, userID string, dueID int64) (*domain.Due, error) {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, fmt.Errorf("failed to find due %d: %w", dueID, err)
	}
	if due.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return due, nil
}

// ListDues retrieves a paginated list of the user's dues.
// Implements portssvc.DueSvcFacade
func (s *dueService) ListDues(ctx context.Context, userID string, params dto.ListDuesParams) (*dto.ListDuesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	dues, nextToken, err := s.dueRepo.ListDuesByUser(ctx, userID, limit, params.NextToken, params.Status)
	if err != nil {
		logger.Error("Failed to list dues", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve dues: %w", err)
	}

	return &dto.ListDuesResponse{
		Dues:      dto.ToDueResponses(dues),
		NextToken: nextToken,
	}, nil
}

// SetDueStatus toggles a due between PENDING and PAID. The transition is a
// toggle, never an arbitrary set: asking for the status the due already has
// is a conflict.
// Implements portssvc.DueSvcFacade
func (s *dueService) SetDueStatus(ctx context.Context, userID string, dueID int64, req dto.SetDueStatusRequest) (*domain.Due, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TargetStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown due status %q", apperrors.ErrValidation, req.TargetStatus)
	}

	tx, err := s.dueRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement: %w", err)
	}
	defer s.dueRepo.Rollback(ctx, tx)

	due, err := s.findOwnedDueForUpdate(ctx, tx, userID, dueID)
	if err != nil {
		return nil, err
	}
	if due.DueStatus == req.TargetStatus {
		return nil, fmt.Errorf("%w: %s: due %d is already %s", apperrors.ErrConflict, ErrDueAlreadyInStatus, dueID, due.DueStatus)
	}

	now := time.Now().UTC()
	if req.TargetStatus == domain.DuePaid {
		err = s.settle(ctx, tx, due, req.Destination, now)
	} else {
		err = s.unsettle(ctx, tx, due, now)
	}
	if err != nil {
		return nil, err
	}

	if err := s.dueRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit settlement for due %d: %w", dueID, err)
	}

	logger.Info("Due status changed",
		slog.Int64("due_id", dueID),
		slog.String("status", string(due.DueStatus)),
	)
	return due, nil
}

// settle performs the PENDING -> PAID transition: it materializes the
// settlement as a ledger entry in the destination account, applies the
// destination balance delta, and consumes the aggregate due total. All
// validation happens before the first write.
func (s *dueService) settle(ctx context.Context, tx pgx.Tx, due *domain.Due, destination *domain.TransferAccountType, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if destination == nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDestinationRequired)
	}
	dest, err := s.destinations.For(*destination)
	if err != nil {
		return fmt.Errorf("%w: unknown destination account %q", apperrors.ErrValidation, *destination)
	}
	if due.DueType == domain.Receivable && !dest.AcceptsReceivable() {
		return fmt.Errorf("%w: a receivable due cannot settle into the %s category", apperrors.ErrConflict, dest.Kind())
	}

	// Balances are read from the row locked in this transaction, never from
	// a value captured earlier in the request.
	user, err := s.userRepo.FindUserByIDForUpdate(ctx, tx, due.UserID)
	if err != nil {
		return fmt.Errorf("failed to lock user %s for settlement: %w", due.UserID, err)
	}
	if due.DueType == domain.Payable && dest.RequiresFunds() && due.Amount.GreaterThan(dest.AvailableFunds(user)) {
		return fmt.Errorf("%w: due amount %s exceeds %s balance %s",
			apperrors.ErrInsufficientBalance, due.Amount, dest.Kind(), dest.AvailableFunds(user))
	}

	dueType := due.DueType
	entry := domain.LedgerEntry{
		UserID:    due.UserID,
		Amount:    due.Amount,
		EntryName: due.Description,
		EntryType: domain.SettlementEntryType(due.DueType),
		DueType:   &dueType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     due.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: due.UserID,
		},
	}
	entryID, err := dest.InsertEntry(ctx, tx, entry)
	if err != nil {
		logger.Error("Failed to insert settlement ledger entry", slog.Int64("due_id", due.DueID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to materialize settlement: %w", err)
	}

	effect := domain.SettlementBalanceEffect(due.DueType, due.Amount)
	deltas := dest.SettlementDeltas(effect).Add(domain.AggregateDelta(due.DueType, due.Amount.Neg()))
	if err := s.userRepo.ApplyBalanceDeltas(ctx, tx, due.UserID, deltas, due.UserID, now); err != nil {
		return fmt.Errorf("failed to apply settlement balance deltas: %w", err)
	}

	if err := s.dueRepo.MarkDueSettled(ctx, tx, due.DueID, dest.Kind(), entryID, due.UserID, now); err != nil {
		return fmt.Errorf("failed to mark due %d settled: %w", due.DueID, err)
	}

	kind := dest.Kind()
	due.DueStatus = domain.DuePaid
	due.TransferAccountType = &kind
	due.TransferAccountID = &entryID
	due.LastUpdatedAt = now
	due.LastUpdatedBy = due.UserID
	return nil
}

// unsettle performs the PAID -> PENDING transition: it removes the linked
// ledger entry, reverses the settlement's balance delta, and restores the
// aggregate due total. A due whose ledger entry has drifted away still flips
// back to pending; only the destination leg is skipped.
func (s *dueService) unsettle(ctx context.Context, tx pgx.Tx, due *domain.Due, now time.Time) error {
	if !due.IsSettled() {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrDueNotSettled)
	}

	reversal, err := s.reverseSettlement(ctx, tx, due)
	if err != nil {
		return err
	}

	deltas := reversal.Add(domain.AggregateDelta(due.DueType, due.Amount))
	if err := s.userRepo.ApplyBalanceDeltas(ctx, tx, due.UserID, deltas, due.UserID, now); err != nil {
		return fmt.Errorf("failed to reverse settlement balance deltas: %w", err)
	}

	if err := s.dueRepo.MarkDueUnsettled(ctx, tx, due.DueID, due.UserID, now); err != nil {
		return fmt.Errorf("failed to mark due %d unsettled: %w", due.DueID, err)
	}

	due.DueStatus = domain.DuePending
	due.TransferAccountType = nil
	due.TransferAccountID = nil
	due.LastUpdatedAt = now
	due.LastUpdatedBy = due.UserID
	return nil
}

// reverseSettlement deletes the ledger entry linked to a settled due and
// returns the balance deltas undoing its effect. When the entry no longer
// exists the reversal leg is skipped and zero deltas are returned; book
// totals for need/want entries are adjusted by the destination itself.
func (s *dueService) reverseSettlement(ctx context.Context, tx pgx.Tx, due *domain.Due) (domain.BalanceDeltas, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dest, err := s.destinations.For(*due.TransferAccountType)
	if err != nil {
		return domain.BalanceDeltas{}, fmt.Errorf("failed to resolve destination %q: %w", *due.TransferAccountType, err)
	}

	removed, err := dest.DeleteEntry(ctx, tx, *due.TransferAccountID, due.UserID)
	if err != nil {
		return domain.BalanceDeltas{}, fmt.Errorf("failed to delete settlement ledger entry %d: %w", *due.TransferAccountID, err)
	}
	if removed == nil {
		logger.Warn("Linked ledger entry missing, skipping destination reversal",
			slog.Int64("due_id", due.DueID),
			slog.Int64("entry_id", *due.TransferAccountID),
			slog.String("destination", string(dest.Kind())),
		)
		return domain.BalanceDeltas{}, nil
	}

	effect := domain.SettlementBalanceEffect(due.DueType, due.Amount)
	return dest.SettlementDeltas(effect.Neg()), nil
}

// DeleteDue removes a due. A settled due has its destination leg reversed
// first; the aggregate totals are only touched for pending dues, because
// settlement already consumed them for paid ones.
// Implements portssvc.DueSvcFacade
func (s *dueService) DeleteDue(ctx context.Context, userID string, dueID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.dueRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin due deletion: %w", err)
	}
	defer s.dueRepo.Rollback(ctx, tx)

	due, err := s.findOwnedDueForUpdate(ctx, tx, userID, dueID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var deltas domain.BalanceDeltas
	if due.IsSettled() {
		deltas, err = s.reverseSettlement(ctx, tx, due)
		if err != nil {
			return err
		}
	} else if due.DueStatus == domain.DuePending {
		deltas = domain.AggregateDelta(due.DueType, due.Amount.Neg())
	}

	if !deltas.IsZero() {
		if err := s.userRepo.ApplyBalanceDeltas(ctx, tx, userID, deltas, userID, now); err != nil {
			return fmt.Errorf("failed to apply deletion balance deltas: %w", err)
		}
	}

	if err := s.dueRepo.DeleteDue(ctx, tx, dueID); err != nil {
		return fmt.Errorf("failed to delete due %d: %w", dueID, err)
	}

	if err := s.dueRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit deletion of due %d: %w", dueID, err)
	}

	logger.Info("Due deleted", slog.Int64("due_id", dueID), slog.String("status", string(due.DueStatus)))
	return nil
}
