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
	"github.com/budgetbook/budget_book_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dueColumns = `due_id, user_id, amount, description, due_date, due_type, due_status,
		transfer_account_type, transfer_account_id,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxDueRepository struct {
	BaseRepository
}

func newPgxDueRepository(db *pgxpool.Pool) portsrepo.DueRepositoryWithTx {
	return &PgxDueRepository{BaseRepository{Pool: db}}
}

// Ensure PgxDueRepository implements portsrepo.DueRepositoryWithTx
var _ portsrepo.DueRepositoryWithTx = (*PgxDueRepository)(nil)

func scanDue(row pgx.Row) (*domain.Due, error) {
	var m models.Due
	err := row.Scan(
		&m.DueID,
		&m.UserID,
		&m.Amount,
		&m.Description,
		&m.DueDate,
		&m.DueType,
		&m.DueStatus,
		&m.TransferAccountType,
		&m.TransferAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainDue(m)
	return &d, nil
}

func (r *PgxDueRepository) SaveDue(ctx context.Context, tx pgx.Tx, due domain.Due) (int64, error) {
	m := mapping.ToModelDue(due)
	query := `
		INSERT INTO dues (user_id, amount, description, due_date, due_type, due_status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING due_id;
	`
	var dueID int64
	err := tx.QueryRow(ctx, query,
		m.UserID,
		m.Amount,
		m.Description,
		m.DueDate,
		m.DueType,
		m.DueStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&dueID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert due: %w", err)
	}
	return dueID, nil
}

func (r *PgxDueRepository) FindDueByID(ctx context.Context, dueID int64) (*domain.Due, error) {
	query := fmt.Sprintf(`SELECT %s FROM dues WHERE due_id = $1;`, dueColumns)
	due, err := scanDue(r.Pool.QueryRow(ctx, query, dueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find due %d: %w", dueID, err)
	}
	return due, nil
}

func (r *PgxDueRepository) FindDueByIDForUpdate(ctx context.Context, tx pgx.Tx, dueID int64) (*domain.Due, error) {
	query := fmt.Sprintf(`SELECT %s FROM dues WHERE due_id = $1 FOR UPDATE;`, dueColumns)
	due, err := scanDue(tx.QueryRow(ctx, query, dueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock due %d: %w", dueID, err)
	}
	return due, nil
}

func (r *PgxDueRepository) UpdateDueFields(ctx context.Context, tx pgx.Tx, due domain.Due) error {
	m := mapping.ToModelDue(due)
	query := `
		UPDATE dues SET
			amount = $2,
			description = $3,
			due_date = $4,
			due_type = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE due_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.DueID,
		m.Amount,
		m.Description,
		m.DueDate,
		m.DueType,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update due %d: %w", due.DueID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDueRepository) MarkDueSettled(ctx context.Context, tx pgx.Tx, dueID int64, destination domain.TransferAccountType, entryID int64, updatedBy string, now time.Time) error {
	query := `
		UPDATE dues SET
			due_status = $2,
			transfer_account_type = $3,
			transfer_account_id = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE due_id = $1;
	`
	tag, err := tx.Exec(ctx, query, dueID, string(domain.DuePaid), string(destination), entryID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark due %d settled: %w", dueID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDueRepository) MarkDueUnsettled(ctx context.Context, tx pgx.Tx, dueID int64, updatedBy string, now time.Time) error {
	query := `
		UPDATE dues SET
			due_status = $2,
			transfer_account_type = NULL,
			transfer_account_id = NULL,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE due_id = $1;
	`
	tag, err := tx.Exec(ctx, query, dueID, string(domain.DuePending), now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark due %d unsettled: %w", dueID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDueRepository) DeleteDue(ctx context.Context, tx pgx.Tx, dueID int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM dues WHERE due_id = $1;`, dueID)
	if err != nil {
		return fmt.Errorf("failed to delete due %d: %w", dueID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListDuesByUser pages through a user's dues newest first with a keyset
// cursor over (created_at, due_id).
func (r *PgxDueRepository) ListDuesByUser(ctx context.Context, userID string, limit int, nextToken *string, status *domain.DueStatus) ([]domain.Due, *string, error) {
	query := fmt.Sprintf(`SELECT %s FROM dues WHERE user_id = $1`, dueColumns)
	args := []interface{}{userID}

	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(` AND due_status = $%d`, len(args))
	}

	if nextToken != nil && *nextToken != "" {
		createdAt, dueID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, dueID)
		query += fmt.Sprintf(` AND (created_at, due_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, due_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query dues for user %s: %w", userID, err)
	}
	defer rows.Close()

	var modelDues []models.Due
	for rows.Next() {
		var m models.Due
		if err := rows.Scan(
			&m.DueID,
			&m.UserID,
			&m.Amount,
			&m.Description,
			&m.DueDate,
			&m.DueType,
			&m.DueStatus,
			&m.TransferAccountType,
			&m.TransferAccountID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan due row: %w", err)
		}
		modelDues = append(modelDues, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating due rows: %w", err)
	}

	var newNextToken *string
	if len(modelDues) > limit {
		modelDues = modelDues[:limit]
		last := modelDues[len(modelDues)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DueID)
		newNextToken = &token
	}

	return mapping.ToDomainDueSlice(modelDues), newNextToken, nil
}
