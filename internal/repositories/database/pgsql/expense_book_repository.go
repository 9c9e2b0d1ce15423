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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const expenseBookColumns = `book_id, user_id, month, total_spendings,
		monthly_income, needs_percent, wants_percent, investments_percent,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseBookRepository struct {
	BaseRepository
}

func newPgxExpenseBookRepository(db *pgxpool.Pool) portsrepo.ExpenseBookRepositoryWithTx {
	return &PgxExpenseBookRepository{BaseRepository{Pool: db}}
}

// Ensure PgxExpenseBookRepository implements portsrepo.ExpenseBookRepositoryWithTx
var _ portsrepo.ExpenseBookRepositoryWithTx = (*PgxExpenseBookRepository)(nil)

func scanExpenseBook(row pgx.Row) (*models.ExpenseBook, error) {
	var m models.ExpenseBook
	err := row.Scan(
		&m.BookID,
		&m.UserID,
		&m.Month,
		&m.TotalSpendings,
		&m.MonthlyIncome,
		&m.NeedsPercent,
		&m.WantsPercent,
		&m.InvestmentsPercent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetOrCreateBookForUpdate resolves the month's book, snapshotting the
// user's income and split percentages at creation time, then locks the row.
// The insert is idempotent under (user_id, month) so concurrent settlements
// race safely: the loser of the insert blocks on the row lock instead.
func (r *PgxExpenseBookRepository) GetOrCreateBookForUpdate(ctx context.Context, tx pgx.Tx, userID string, month time.Time, now time.Time) (*domain.ExpenseBook, error) {
	insertQuery := `
		INSERT INTO expense_books (user_id, month, total_spendings,
			monthly_income, needs_percent, wants_percent, investments_percent,
			created_at, created_by, last_updated_at, last_updated_by)
		SELECT user_id, $2, 0, monthly_income, needs_percent, wants_percent, investments_percent,
			$3, user_id, $3, user_id
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL
		ON CONFLICT (user_id, month) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insertQuery, userID, month, now); err != nil {
		return nil, fmt.Errorf("failed to create expense book for user %s: %w", userID, err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s FROM expense_books
		WHERE user_id = $1 AND month = $2
		FOR UPDATE;
	`, expenseBookColumns)

	m, err := scanExpenseBook(tx.QueryRow(ctx, selectQuery, userID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The INSERT...SELECT found no user row.
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock expense book for user %s: %w", userID, err)
	}

	book := mapping.ToDomainExpenseBook(*m)
	return &book, nil
}

func (r *PgxExpenseBookRepository) ApplySpendingsDelta(ctx context.Context, tx pgx.Tx, bookID int64, delta decimal.Decimal, updatedBy string, now time.Time) (bool, error) {
	if delta.IsZero() {
		return true, nil
	}
	query := `
		UPDATE expense_books SET
			total_spendings = total_spendings + $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE book_id = $1;
	`
	tag, err := tx.Exec(ctx, query, bookID, delta, now, updatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to adjust spendings on book %d: %w", bookID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxExpenseBookRepository) FindBookByMonth(ctx context.Context, userID string, month time.Time) (*domain.ExpenseBook, error) {
	query := fmt.Sprintf(`SELECT %s FROM expense_books WHERE user_id = $1 AND month = $2;`, expenseBookColumns)
	m, err := scanExpenseBook(r.Pool.QueryRow(ctx, query, userID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense book for user %s month %s: %w", userID, month.Format("2006-01"), err)
	}
	book := mapping.ToDomainExpenseBook(*m)
	return &book, nil
}

func (r *PgxExpenseBookRepository) ListBooksByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.ExpenseBook, error) {
	if limit <= 0 {
		limit = 12
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
		SELECT %s FROM expense_books
		WHERE user_id = $1
		ORDER BY month DESC
		LIMIT $2 OFFSET $3;
	`, expenseBookColumns)

	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense books for user %s: %w", userID, err)
	}
	defer rows.Close()

	var modelBooks []models.ExpenseBook
	for rows.Next() {
		var m models.ExpenseBook
		if err := rows.Scan(
			&m.BookID,
			&m.UserID,
			&m.Month,
			&m.TotalSpendings,
			&m.MonthlyIncome,
			&m.NeedsPercent,
			&m.WantsPercent,
			&m.InvestmentsPercent,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense book row: %w", err)
		}
		modelBooks = append(modelBooks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense book rows: %w", err)
	}

	return mapping.ToDomainExpenseBookSlice(modelBooks), nil
}
