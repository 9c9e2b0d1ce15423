package pgsql

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	"github.com/budgetbook/budget_book_app/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseBookWriter ---
type MockExpenseBookWriter struct {
	mock.Mock
}

func (m *MockExpenseBookWriter) GetOrCreateBookForUpdate(ctx context.Context, tx pgx.Tx, userID string, month time.Time, now time.Time) (*domain.ExpenseBook, error) {
	args := m.Called(ctx, tx, userID, month, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseBook), args.Error(1)
}

func (m *MockExpenseBookWriter) ApplySpendingsDelta(ctx context.Context, tx pgx.Tx, bookID int64, delta decimal.Decimal, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, bookID, delta, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

// Ensure MockExpenseBookWriter implements portsrepo.ExpenseBookWriter
var _ portsrepo.ExpenseBookWriter = (*MockExpenseBookWriter)(nil)

// stubRow satisfies pgx.Row with a canned Scan.
type stubRow struct {
	fill func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.fill(dest...) }

// stubTx stands in for a pgx transaction; only the statements the
// destinations issue are implemented.
type stubTx struct {
	pgx.Tx
	queryRowFn func(sql string, args []any) pgx.Row
	execFn     func(sql string, args []any) (pgconn.CommandTag, error)
}

func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.queryRowFn(sql, args)
}

func (t *stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.execFn(sql, args)
}

func noRows() stubRow {
	return stubRow{fill: func(...any) error { return pgx.ErrNoRows }}
}

func returnedID(id int64) stubRow {
	return stubRow{fill: func(dest ...any) error {
		*dest[0].(*int64) = id
		return nil
	}}
}

// entryRow fills the ledger row column list in select/returning order.
func entryRow(src models.LedgerEntry) stubRow {
	return stubRow{fill: func(dest ...any) error {
		*dest[0].(*int64) = src.EntryID
		*dest[1].(*string) = src.UserID
		*dest[2].(*decimal.Decimal) = src.Amount
		*dest[3].(*string) = src.EntryName
		*dest[4].(*string) = src.EntryType
		*dest[5].(**string) = src.DueType
		*dest[6].(**int64) = src.BookID
		*dest[7].(*time.Time) = src.CreatedAt
		*dest[8].(*string) = src.CreatedBy
		*dest[9].(*time.Time) = src.LastUpdatedAt
		*dest[10].(*string) = src.LastUpdatedBy
		return nil
	}}
}

func deltaOf(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(got decimal.Decimal) bool {
		return got.Equal(want)
	})
}

// --- Test Suite ---
type ExpenseDestinationTestSuite struct {
	suite.Suite
	books *MockExpenseBookWriter
	dest  *expenseDestination

	ctx    context.Context
	userID string
	now    time.Time
	bookID int64
}

func (s *ExpenseDestinationTestSuite) SetupTest() {
	s.books = new(MockExpenseBookWriter)
	s.dest = &expenseDestination{
		kind:  domain.TransferNeed,
		table: ledgerTables[domain.TransferNeed],
		books: s.books,
	}

	s.ctx = context.Background()
	s.userID = uuid.NewString()
	s.now = time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)
	s.bookID = 5
}

func (s *ExpenseDestinationTestSuite) storedEntry(amount int64, bookID *int64) models.LedgerEntry {
	dueType := string(domain.Payable)
	return models.LedgerEntry{
		EntryID:   77,
		UserID:    s.userID,
		Amount:    decimal.NewFromInt(amount),
		EntryName: "groceries",
		EntryType: string(domain.EntryOut),
		DueType:   &dueType,
		BookID:    bookID,
		AuditFields: models.AuditFields{
			CreatedAt:     s.now,
			CreatedBy:     s.userID,
			LastUpdatedAt: s.now,
			LastUpdatedBy: s.userID,
		},
	}
}

func (s *ExpenseDestinationTestSuite) TestInsertEntryGrowsBookTotal() {
	book := &domain.ExpenseBook{BookID: s.bookID, UserID: s.userID, Month: domain.MonthStart(s.now)}

	var insertedBookID *int64
	tx := &stubTx{
		queryRowFn: func(sql string, args []any) pgx.Row {
			s.Require().Contains(sql, "INSERT INTO need_entries")
			insertedBookID = args[5].(*int64)
			return returnedID(77)
		},
	}

	// The book is resolved and locked for the entry's birth month.
	s.books.On("GetOrCreateBookForUpdate", mock.Anything, tx, s.userID,
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), s.now).Return(book, nil).Once()
	s.books.On("ApplySpendingsDelta", mock.Anything, tx, s.bookID,
		deltaOf(decimal.NewFromInt(100)), s.userID, s.now).Return(true, nil).Once()

	dueType := domain.Payable
	entryID, err := s.dest.InsertEntry(s.ctx, tx, domain.LedgerEntry{
		UserID:    s.userID,
		Amount:    decimal.NewFromInt(100),
		EntryName: "groceries",
		EntryType: domain.EntryOut,
		DueType:   &dueType,
		AuditFields: domain.AuditFields{
			CreatedAt:     s.now,
			CreatedBy:     s.userID,
			LastUpdatedAt: s.now,
			LastUpdatedBy: s.userID,
		},
	})

	s.Require().NoError(err)
	s.Equal(int64(77), entryID)
	s.Require().NotNil(insertedBookID)
	s.Equal(s.bookID, *insertedBookID)
	s.books.AssertExpectations(s.T())
}

func (s *ExpenseDestinationTestSuite) TestUpdateEntryMovesBirthBookTotal() {
	bookID := s.bookID
	existing := s.storedEntry(100, &bookID)

	tx := &stubTx{
		queryRowFn: func(sql string, args []any) pgx.Row {
			s.Require().Contains(sql, "FOR UPDATE")
			return entryRow(existing)
		},
		execFn: func(sql string, args []any) (pgconn.CommandTag, error) {
			s.Require().True(strings.Contains(sql, "UPDATE need_entries"))
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	// 100 -> 150 moves the total of the book the entry was born into by +50.
	s.books.On("ApplySpendingsDelta", mock.Anything, tx, s.bookID,
		deltaOf(decimal.NewFromInt(50)), s.userID, s.now).Return(true, nil).Once()

	found, err := s.dest.UpdateEntry(s.ctx, tx, 77, s.userID, domain.LedgerEntryUpdate{
		Amount:    decimal.NewFromInt(150),
		EntryName: "groceries",
		EntryType: domain.EntryOut,
		DueType:   domain.Payable,
		UpdatedBy: s.userID,
		UpdatedAt: s.now,
	})

	s.Require().NoError(err)
	s.True(found)
	s.books.AssertExpectations(s.T())
}

func (s *ExpenseDestinationTestSuite) TestUpdateEntryMissingRowSkipsBook() {
	tx := &stubTx{
		queryRowFn: func(sql string, args []any) pgx.Row { return noRows() },
	}

	found, err := s.dest.UpdateEntry(s.ctx, tx, 77, s.userID, domain.LedgerEntryUpdate{
		Amount:    decimal.NewFromInt(150),
		UpdatedBy: s.userID,
		UpdatedAt: s.now,
	})

	s.Require().NoError(err)
	s.False(found)
	s.books.AssertNotCalled(s.T(), "ApplySpendingsDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseDestinationTestSuite) TestUpdateEntryWithoutBookSkipsTotal() {
	existing := s.storedEntry(100, nil)

	tx := &stubTx{
		queryRowFn: func(sql string, args []any) pgx.Row { return entryRow(existing) },
		execFn: func(sql string, args []any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	found, err := s.dest.UpdateEntry(s.ctx, tx, 77, s.userID, domain.LedgerEntryUpdate{
		Amount:    decimal.NewFromInt(150),
		UpdatedBy: s.userID,
		UpdatedAt: s.now,
	})

	s.Require().NoError(err)
	s.True(found)
	s.books.AssertNotCalled(s.T(), "ApplySpendingsDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseDestinationTestSuite) TestDeleteEntryShrinksBookTotal() {
	bookID := s.bookID
	removed := s.storedEntry(100, &bookID)

	tx := &stubTx{
		queryRowFn: func(sql string, args []any) pgx.Row {
			s.Require().Contains(sql, "DELETE FROM need_entries")
			return entryRow(removed)
		},
	}

	s.books.On("ApplySpendingsDelta", mock.Anything, tx, s.bookID,
		deltaOf(decimal.NewFromInt(-100)), s.userID, s.now).Return(true, nil).Once()

	entry, err := s.dest.DeleteEntry(s.ctx, tx, 77, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(int64(77), entry.EntryID)
	s.True(entry.Amount.Equal(decimal.NewFromInt(100)))
	s.books.AssertExpectations(s.T())
}

func (s *ExpenseDestinationTestSuite) TestDeleteEntryMissingRowSkipsBook() {
	tx := &stubTx{
		queryRowFn: func(sql string, args []any) pgx.Row { return noRows() },
	}

	entry, err := s.dest.DeleteEntry(s.ctx, tx, 77, s.userID)

	s.Require().NoError(err)
	s.Nil(entry)
	s.books.AssertNotCalled(s.T(), "ApplySpendingsDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseDestinationTestSuite) TestDeleteEntryWithoutBookSkipsTotal() {
	removed := s.storedEntry(100, nil)

	tx := &stubTx{
		queryRowFn: func(sql string, args []any) pgx.Row { return entryRow(removed) },
	}

	entry, err := s.dest.DeleteEntry(s.ctx, tx, 77, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.books.AssertNotCalled(s.T(), "ApplySpendingsDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseDestinationTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseDestinationTestSuite))
}
