package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	"github.com/budgetbook/budget_book_app/internal/models"
	"github.com/budgetbook/budget_book_app/internal/utils/mapping"
	"github.com/budgetbook/budget_book_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Each destination kind persists into its own ledger table. The table name
// is always taken from this map, never from request input.
var ledgerTables = map[domain.TransferAccountType]string{
	domain.TransferSavings:       "savings_entries",
	domain.TransferMiscellaneous: "miscellaneous_entries",
	domain.TransferNeed:          "need_entries",
	domain.TransferWant:          "want_entries",
}

func tableForKind(kind domain.TransferAccountType) (string, error) {
	table, ok := ledgerTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: no ledger table for destination %q", apperrors.ErrInternal, kind)
	}
	return table, nil
}

// accountDestination settles dues into a balance-carrying account table
// (savings or miscellaneous). The balance lives on the user row; entries are
// the audit trail.
type accountDestination struct {
	kind          domain.TransferAccountType
	table         string
	requiresFunds bool
	funds         func(*domain.User) decimal.Decimal
	deltas        func(decimal.Decimal) domain.BalanceDeltas
}

var _ portsrepo.LedgerDestination = (*accountDestination)(nil)

func (d *accountDestination) Kind() domain.TransferAccountType { return d.kind }
func (d *accountDestination) AcceptsReceivable() bool          { return true }
func (d *accountDestination) RequiresFunds() bool              { return d.requiresFunds }

func (d *accountDestination) AvailableFunds(user *domain.User) decimal.Decimal {
	return d.funds(user)
}

func (d *accountDestination) SettlementDeltas(effect decimal.Decimal) domain.BalanceDeltas {
	return d.deltas(effect)
}

func (d *accountDestination) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (int64, error) {
	return insertLedgerEntry(ctx, tx, d.table, entry, nil)
}

func (d *accountDestination) UpdateEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string, update domain.LedgerEntryUpdate) (bool, error) {
	return updateLedgerEntry(ctx, tx, d.table, entryID, userID, update)
}

func (d *accountDestination) DeleteEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string) (*domain.LedgerEntry, error) {
	return deleteLedgerEntry(ctx, tx, d.table, entryID, userID)
}

// expenseDestination settles payable dues into the current month's need or
// want category. No user balance is touched; instead the month's expense
// book tracks the running total, and every entry write keeps it in sync.
type expenseDestination struct {
	kind  domain.TransferAccountType
	table string
	books portsrepo.ExpenseBookWriter
}

var _ portsrepo.LedgerDestination = (*expenseDestination)(nil)

func (d *expenseDestination) Kind() domain.TransferAccountType { return d.kind }
func (d *expenseDestination) AcceptsReceivable() bool          { return false }
func (d *expenseDestination) RequiresFunds() bool              { return false }

func (d *expenseDestination) AvailableFunds(*domain.User) decimal.Decimal {
	return decimal.Zero
}

func (d *expenseDestination) SettlementDeltas(decimal.Decimal) domain.BalanceDeltas {
	return domain.BalanceDeltas{}
}

func (d *expenseDestination) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (int64, error) {
	month := domain.MonthStart(entry.CreatedAt)
	book, err := d.books.GetOrCreateBookForUpdate(ctx, tx, entry.UserID, month, entry.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve expense book for %s: %w", month.Format("2006-01"), err)
	}

	entryID, err := insertLedgerEntry(ctx, tx, d.table, entry, &book.BookID)
	if err != nil {
		return 0, err
	}

	if _, err := d.books.ApplySpendingsDelta(ctx, tx, book.BookID, entry.Amount, entry.CreatedBy, entry.CreatedAt); err != nil {
		return 0, fmt.Errorf("failed to grow expense book %d: %w", book.BookID, err)
	}
	return entryID, nil
}

func (d *expenseDestination) UpdateEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string, update domain.LedgerEntryUpdate) (bool, error) {
	existing, err := findLedgerEntryForUpdate(ctx, tx, d.table, entryID, userID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	found, err := updateLedgerEntry(ctx, tx, d.table, entryID, userID, update)
	if err != nil || !found {
		return found, err
	}

	// The entry stays attached to the book it was born into, so an amount
	// change moves that book's total, not the current month's.
	if existing.BookID != nil {
		delta := update.Amount.Sub(existing.Amount)
		if _, err := d.books.ApplySpendingsDelta(ctx, tx, *existing.BookID, delta, update.UpdatedBy, update.UpdatedAt); err != nil {
			return false, fmt.Errorf("failed to adjust expense book %d: %w", *existing.BookID, err)
		}
	}
	return true, nil
}

func (d *expenseDestination) DeleteEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string) (*domain.LedgerEntry, error) {
	removed, err := deleteLedgerEntry(ctx, tx, d.table, entryID, userID)
	if err != nil || removed == nil {
		return removed, err
	}

	if removed.BookID != nil {
		if _, err := d.books.ApplySpendingsDelta(ctx, tx, *removed.BookID, removed.Amount.Neg(), removed.LastUpdatedBy, removed.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to shrink expense book %d: %w", *removed.BookID, err)
		}
	}
	return removed, nil
}

// Shared SQL helpers for the four structurally identical ledger tables.

func insertLedgerEntry(ctx context.Context, tx pgx.Tx, table string, entry domain.LedgerEntry, bookID *int64) (int64, error) {
	m := mapping.ToModelLedgerEntry(entry)
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, amount, entry_name, entry_type, due_type, book_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING entry_id;
	`, table)

	var entryID int64
	err := tx.QueryRow(ctx, query,
		m.UserID,
		m.Amount,
		m.EntryName,
		m.EntryType,
		m.DueType,
		bookID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&entryID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry into %s: %w", table, err)
	}
	return entryID, nil
}

func findLedgerEntryForUpdate(ctx context.Context, tx pgx.Tx, table string, entryID int64, userID string) (*domain.LedgerEntry, error) {
	query := fmt.Sprintf(`
		SELECT entry_id, user_id, amount, entry_name, entry_type, due_type, book_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM %s
		WHERE entry_id = $1 AND user_id = $2
		FOR UPDATE;
	`, table)

	m, err := scanLedgerEntry(tx.QueryRow(ctx, query, entryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock entry %d in %s: %w", entryID, table, err)
	}
	d := mapping.ToDomainLedgerEntry(*m)
	return &d, nil
}

func updateLedgerEntry(ctx context.Context, tx pgx.Tx, table string, entryID int64, userID string, update domain.LedgerEntryUpdate) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET
			amount = $3,
			entry_name = $4,
			entry_type = $5,
			due_type = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE entry_id = $1 AND user_id = $2;
	`, table)

	tag, err := tx.Exec(ctx, query,
		entryID,
		userID,
		update.Amount,
		update.EntryName,
		string(update.EntryType),
		string(update.DueType),
		update.UpdatedAt,
		update.UpdatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update entry %d in %s: %w", entryID, table, err)
	}
	return tag.RowsAffected() > 0, nil
}

func deleteLedgerEntry(ctx context.Context, tx pgx.Tx, table string, entryID int64, userID string) (*domain.LedgerEntry, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE entry_id = $1 AND user_id = $2
		RETURNING entry_id, user_id, amount, entry_name, entry_type, due_type, book_id,
			created_at, created_by, last_updated_at, last_updated_by;
	`, table)

	m, err := scanLedgerEntry(tx.QueryRow(ctx, query, entryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete entry %d from %s: %w", entryID, table, err)
	}
	d := mapping.ToDomainLedgerEntry(*m)
	return &d, nil
}

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.Amount,
		&m.EntryName,
		&m.EntryType,
		&m.DueType,
		&m.BookID,
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

// destinationRegistry resolves destinations by kind.
type destinationRegistry struct {
	destinations map[domain.TransferAccountType]portsrepo.LedgerDestination
}

// NewDestinationRegistry wires the four settlement destinations. Need and
// want share the expense book writer so their totals land on the same
// monthly books.
func NewDestinationRegistry(books portsrepo.ExpenseBookWriter) portsrepo.DestinationRegistry {
	return &destinationRegistry{
		destinations: map[domain.TransferAccountType]portsrepo.LedgerDestination{
			domain.TransferSavings: &accountDestination{
				kind:          domain.TransferSavings,
				table:         ledgerTables[domain.TransferSavings],
				requiresFunds: true,
				funds:         func(u *domain.User) decimal.Decimal { return u.SavingsBalance },
				deltas:        func(e decimal.Decimal) domain.BalanceDeltas { return domain.BalanceDeltas{Savings: e} },
			},
			domain.TransferMiscellaneous: &accountDestination{
				kind:          domain.TransferMiscellaneous,
				table:         ledgerTables[domain.TransferMiscellaneous],
				requiresFunds: false,
				funds:         func(u *domain.User) decimal.Decimal { return u.MiscellaneousBalance },
				deltas:        func(e decimal.Decimal) domain.BalanceDeltas { return domain.BalanceDeltas{Miscellaneous: e} },
			},
			domain.TransferNeed: &expenseDestination{
				kind:  domain.TransferNeed,
				table: ledgerTables[domain.TransferNeed],
				books: books,
			},
			domain.TransferWant: &expenseDestination{
				kind:  domain.TransferWant,
				table: ledgerTables[domain.TransferWant],
				books: books,
			},
		},
	}
}

func (r *destinationRegistry) For(kind domain.TransferAccountType) (portsrepo.LedgerDestination, error) {
	dest, ok := r.destinations[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown destination %q", apperrors.ErrValidation, kind)
	}
	return dest, nil
}

// PgxLedgerRepository serves the read-only listing endpoints over the ledger
// tables.
type PgxLedgerRepository struct {
	db *pgxpool.Pool
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{db: db}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// ListEntriesByUser pages through a ledger table newest first with a keyset
// cursor over (created_at, entry_id).
func (r *PgxLedgerRepository) ListEntriesByUser(ctx context.Context, kind domain.TransferAccountType, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, nil, err
	}

	query := fmt.Sprintf(`
		SELECT entry_id, user_id, amount, entry_name, entry_type, due_type, book_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM %s
		WHERE user_id = $1`, table)
	args := []interface{}{userID}

	if nextToken != nil && *nextToken != "" {
		createdAt, entryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, entryID)
		query += fmt.Sprintf(` AND (created_at, entry_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT $%d;`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query %s for user %s: %w", table, userID, err)
	}
	defer rows.Close()

	var modelEntries []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.UserID,
			&m.Amount,
			&m.EntryName,
			&m.EntryType,
			&m.DueType,
			&m.BookID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	var newNextToken *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		newNextToken = &token
	}

	return mapping.ToDomainLedgerEntrySlice(modelEntries), newNextToken, nil
}
