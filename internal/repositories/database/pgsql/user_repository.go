package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	"github.com/budgetbook/budget_book_app/internal/models"
	"github.com/budgetbook/budget_book_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, password_hash, name,
		monthly_income, needs_percent, wants_percent, investments_percent,
		savings_balance, investments_balance, miscellaneous_balance, due_payable, due_receivable,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.MonthlyIncome,
		&m.NeedsPercent,
		&m.WantsPercent,
		&m.InvestmentsPercent,
		&m.SavingsBalance,
		&m.InvestmentsBalance,
		&m.MiscellaneousBalance,
		&m.DuePayable,
		&m.DueReceivable,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, username, password_hash, name,
			monthly_income, needs_percent, wants_percent, investments_percent,
			savings_balance, investments_balance, miscellaneous_balance, due_payable, due_receivable,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.MonthlyIncome,
		m.NeedsPercent,
		m.WantsPercent,
		m.InvestmentsPercent,
		m.SavingsBalance,
		m.InvestmentsBalance,
		m.MiscellaneousBalance,
		m.DuePayable,
		m.DueReceivable,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: username %q is already taken", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1 AND deleted_at IS NULL;`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 AND deleted_at IS NULL;`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE;`, userColumns)
	user, err := scanUser(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users SET
			name = $2,
			monthly_income = $3,
			needs_percent = $4,
			wants_percent = $5,
			investments_percent = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.MonthlyIncome,
		m.NeedsPercent,
		m.WantsPercent,
		m.InvestmentsPercent,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyBalanceDeltas adjusts the running balance columns in one statement on
// the already-locked user row. Zero deltas are a no-op.
func (r *PgxUserRepository) ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, userID string, deltas domain.BalanceDeltas, updatedBy string, now time.Time) error {
	if deltas.IsZero() {
		return nil
	}
	query := `
		UPDATE users SET
			savings_balance = savings_balance + $2,
			miscellaneous_balance = miscellaneous_balance + $3,
			investments_balance = investments_balance + $4,
			due_payable = due_payable + $5,
			due_receivable = due_receivable + $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query,
		userID,
		deltas.Savings,
		deltas.Miscellaneous,
		deltas.Investments,
		deltas.DuePayable,
		deltas.DueReceivable,
		now,
		updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to apply balance deltas for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
