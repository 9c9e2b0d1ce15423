package services_test

import (
	"context"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock DueRepository ---
type MockDueRepository struct {
	mock.Mock
}

// Ensure MockDueRepository implements portsrepo.DueRepositoryWithTx
var _ portsrepo.DueRepositoryWithTx = (*MockDueRepository)(nil)

func (m *MockDueRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDueRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDueRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDueRepository) FindDueByID(ctx context.Context, dueID int64) (*domain.Due, error) {
	args := m.Called(ctx, dueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueRepository) FindDueByIDForUpdate(ctx context.Context, tx pgx.Tx, dueID int64) (*domain.Due, error) {
	args := m.Called(ctx, tx, dueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueRepository) ListDuesByUser(ctx context.Context, userID string, limit int, nextToken *string, status *domain.DueStatus) ([]domain.Due, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Due), returnedNextToken, args.Error(2)
}

func (m *MockDueRepository) SaveDue(ctx context.Context, tx pgx.Tx, due domain.Due) (int64, error) {
	args := m.Called(ctx, tx, due)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDueRepository) UpdateDueFields(ctx context.Context, tx pgx.Tx, due domain.Due) error {
	args := m.Called(ctx, tx, due)
	return args.Error(0)
}

func (m *MockDueRepository) MarkDueSettled(ctx context.Context, tx pgx.Tx, dueID int64, destination domain.TransferAccountType, entryID int64, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, dueID, destination, entryID, updatedBy, now)
	return args.Error(0)
}

func (m *MockDueRepository) MarkDueUnsettled(ctx context.Context, tx pgx.Tx, dueID int64, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, dueID, updatedBy, now)
	return args.Error(0)
}

func (m *MockDueRepository) DeleteDue(ctx context.Context, tx pgx.Tx, dueID int64) error {
	args := m.Called(ctx, tx, dueID)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, userID string, deltas domain.BalanceDeltas, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, userID, deltas, updatedBy, now)
	return args.Error(0)
}

// --- Mock LedgerDestination ---
type MockDestination struct {
	mock.Mock
}

// Ensure MockDestination implements portsrepo.LedgerDestination
var _ portsrepo.LedgerDestination = (*MockDestination)(nil)

func (m *MockDestination) Kind() domain.TransferAccountType {
	args := m.Called()
	return args.Get(0).(domain.TransferAccountType)
}

func (m *MockDestination) AcceptsReceivable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDestination) RequiresFunds() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDestination) AvailableFunds(user *domain.User) decimal.Decimal {
	args := m.Called(user)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockDestination) SettlementDeltas(effect decimal.Decimal) domain.BalanceDeltas {
	args := m.Called(effect)
	return args.Get(0).(domain.BalanceDeltas)
}

func (m *MockDestination) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (int64, error) {
	args := m.Called(ctx, tx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDestination) UpdateEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string, update domain.LedgerEntryUpdate) (bool, error) {
	args := m.Called(ctx, tx, entryID, userID, update)
	return args.Bool(0), args.Error(1)
}

func (m *MockDestination) DeleteEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock DestinationRegistry ---
type MockDestinationRegistry struct {
	mock.Mock
}

// Ensure MockDestinationRegistry implements portsrepo.DestinationRegistry
var _ portsrepo.DestinationRegistry = (*MockDestinationRegistry)(nil)

func (m *MockDestinationRegistry) For(kind domain.TransferAccountType) (portsrepo.LedgerDestination, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsrepo.LedgerDestination), args.Error(1)
}

// deltasEqual builds a testify matcher asserting exact balance deltas.
func deltasEqual(want domain.BalanceDeltas) interface{} {
	return mock.MatchedBy(func(got domain.BalanceDeltas) bool {
		return got.Savings.Equal(want.Savings) &&
			got.Miscellaneous.Equal(want.Miscellaneous) &&
			got.Investments.Equal(want.Investments) &&
			got.DuePayable.Equal(want.DuePayable) &&
			got.DueReceivable.Equal(want.DueReceivable)
	})
}

// amountEqual builds a testify matcher for a decimal argument.
func amountEqual(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(got decimal.Decimal) bool {
		return got.Equal(want)
	})
}
