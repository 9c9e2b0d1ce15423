package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/core/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DueEditorTestSuite struct {
	suite.Suite
	dueRepo  *MockDueRepository
	userRepo *MockUserRepository
	registry *MockDestinationRegistry
	dest     *MockDestination
	service  portssvc.DueSvcFacade

	ctx    context.Context
	userID string
	user   *domain.User
}

func (s *DueEditorTestSuite) SetupTest() {
	s.dueRepo = new(MockDueRepository)
	s.userRepo = new(MockUserRepository)
	s.registry = new(MockDestinationRegistry)
	s.dest = new(MockDestination)
	s.service = services.NewDueService(s.dueRepo, s.userRepo, s.registry)

	s.ctx = context.Background()
	s.userID = uuid.NewString()
	s.user = &domain.User{
		UserID:         s.userID,
		SavingsBalance: decimal.NewFromInt(500),
	}
}

func (s *DueEditorTestSuite) expectTx() {
	s.dueRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	s.dueRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.dueRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (s *DueEditorTestSuite) pendingDue(dueType domain.DueType, amount int64) *domain.Due {
	return &domain.Due{
		DueID:       9,
		UserID:      s.userID,
		Amount:      decimal.NewFromInt(amount),
		Description: "rent",
		DueDate:     time.Now().Add(72 * time.Hour),
		DueType:     dueType,
		DueStatus:   domain.DuePending,
	}
}

func (s *DueEditorTestSuite) settledDue(dueType domain.DueType, amount int64, destination domain.TransferAccountType, entryID int64) *domain.Due {
	due := s.pendingDue(dueType, amount)
	due.DueStatus = domain.DuePaid
	due.TransferAccountType = &destination
	due.TransferAccountID = &entryID
	return due
}

func (s *DueEditorTestSuite) editRequest(dueType domain.DueType, amount int64) dto.EditDueRequest {
	return dto.EditDueRequest{
		Amount:      decimal.NewFromInt(amount),
		Description: "rent updated",
		DueDate:     time.Now().Add(96 * time.Hour),
		DueType:     dueType,
	}
}

func (s *DueEditorTestSuite) expectDueRowRewrite(req dto.EditDueRequest) {
	s.dueRepo.On("UpdateDueFields", mock.Anything, mock.Anything, mock.MatchedBy(func(d domain.Due) bool {
		return d.DueID == 9 &&
			d.Amount.Equal(req.Amount) &&
			d.Description == req.Description &&
			d.DueType == req.DueType
	})).Return(nil).Once()
}

func (s *DueEditorTestSuite) TestEditPendingDueAmountOnly() {
	due := s.pendingDue(domain.Payable, 100)
	req := s.editRequest(domain.Payable, 130)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()
	s.userRepo.On("ApplyBalanceDeltas", mock.Anything, mock.Anything, s.userID,
		deltasEqual(domain.BalanceDeltas{DuePayable: decimal.NewFromInt(30)}),
		s.userID, mock.Anything).Return(nil).Once()
	s.expectDueRowRewrite(req)

	result, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().NoError(err)
	s.True(result.Amount.Equal(decimal.NewFromInt(130)))
	s.Equal("rent updated", result.Description)
	s.dueRepo.AssertExpectations(s.T())
	s.userRepo.AssertExpectations(s.T())
}

func (s *DueEditorTestSuite) TestEditPendingDueTypeFlipMovesAggregates() {
	due := s.pendingDue(domain.Payable, 100)
	req := s.editRequest(domain.Receivable, 90)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()

	// The old amount leaves duePayable and the new amount lands on dueReceivable.
	s.userRepo.On("ApplyBalanceDeltas", mock.Anything, mock.Anything, s.userID,
		deltasEqual(domain.BalanceDeltas{
			DuePayable:    decimal.NewFromInt(-100),
			DueReceivable: decimal.NewFromInt(90),
		}), s.userID, mock.Anything).Return(nil).Once()
	s.expectDueRowRewrite(req)

	result, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().NoError(err)
	s.Equal(domain.Receivable, result.DueType)
	s.userRepo.AssertExpectations(s.T())
}

func (s *DueEditorTestSuite) TestEditPendingDueSameValuesSkipsBalances() {
	due := s.pendingDue(domain.Payable, 100)
	req := s.editRequest(domain.Payable, 100)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()
	s.expectDueRowRewrite(req)

	_, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().NoError(err)
	s.userRepo.AssertNotCalled(s.T(), "ApplyBalanceDeltas", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *DueEditorTestSuite) TestEditSettledDueAmountChange() {
	due := s.settledDue(domain.Payable, 100, domain.TransferSavings, 555)
	req := s.editRequest(domain.Payable, 150)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()
	s.registry.On("For", domain.TransferSavings).Return(s.dest, nil).Once()
	s.userRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, s.userID).Return(s.user, nil).Once()

	s.dest.On("Kind").Return(domain.TransferSavings)
	s.dest.On("RequiresFunds").Return(true).Once()
	s.dest.On("AvailableFunds", s.user).Return(decimal.NewFromInt(500))
	s.dest.On("UpdateEntry", mock.Anything, mock.Anything, int64(555), s.userID, mock.MatchedBy(func(u domain.LedgerEntryUpdate) bool {
		return u.Amount.Equal(decimal.NewFromInt(150)) &&
			u.EntryName == "rent updated" &&
			u.EntryType == domain.EntryOut &&
			u.DueType == domain.Payable
	})).Return(true, nil).Once()

	// Old effect -100, new effect -150: the account gives up another 50.
	s.dest.On("SettlementDeltas", amountEqual(decimal.NewFromInt(-50))).
		Return(domain.BalanceDeltas{Savings: decimal.NewFromInt(-50)}).Once()
	s.userRepo.On("ApplyBalanceDeltas", mock.Anything, mock.Anything, s.userID,
		deltasEqual(domain.BalanceDeltas{Savings: decimal.NewFromInt(-50)}),
		s.userID, mock.Anything).Return(nil).Once()
	s.expectDueRowRewrite(req)

	result, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().NoError(err)
	s.True(result.Amount.Equal(decimal.NewFromInt(150)))
	s.Equal(domain.DuePaid, result.DueStatus)
	s.dest.AssertExpectations(s.T())
	s.userRepo.AssertExpectations(s.T())
}

func (s *DueEditorTestSuite) TestEditSettledDueTypeFlipIntoSavings() {
	due := s.settledDue(domain.Payable, 100, domain.TransferSavings, 555)
	req := s.editRequest(domain.Receivable, 100)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()
	s.registry.On("For", domain.TransferSavings).Return(s.dest, nil).Once()
	s.userRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, s.userID).Return(s.user, nil).Once()

	s.dest.On("Kind").Return(domain.TransferSavings)
	s.dest.On("AcceptsReceivable").Return(true).Once()
	s.dest.On("UpdateEntry", mock.Anything, mock.Anything, int64(555), s.userID, mock.MatchedBy(func(u domain.LedgerEntryUpdate) bool {
		return u.EntryType == domain.EntryIn && u.DueType == domain.Receivable
	})).Return(true, nil).Once()

	// The entry flips from a 100 outflow to a 100 inflow: +200 on the account.
	s.dest.On("SettlementDeltas", amountEqual(decimal.NewFromInt(200))).
		Return(domain.BalanceDeltas{Savings: decimal.NewFromInt(200)}).Once()
	s.userRepo.On("ApplyBalanceDeltas", mock.Anything, mock.Anything, s.userID,
		deltasEqual(domain.BalanceDeltas{Savings: decimal.NewFromInt(200)}),
		s.userID, mock.Anything).Return(nil).Once()
	s.expectDueRowRewrite(req)

	result, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().NoError(err)
	s.Equal(domain.Receivable, result.DueType)
	s.dest.AssertExpectations(s.T())
}

func (s *DueEditorTestSuite) TestEditSettledDueTypeFlipIntoNeedRejected() {
	due := s.settledDue(domain.Payable, 100, domain.TransferNeed, 555)
	req := s.editRequest(domain.Receivable, 100)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()
	s.registry.On("For", domain.TransferNeed).Return(s.dest, nil).Once()
	s.dest.On("Kind").Return(domain.TransferNeed)
	s.dest.On("AcceptsReceivable").Return(false).Once()

	_, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.dest.AssertNotCalled(s.T(), "UpdateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.dueRepo.AssertNotCalled(s.T(), "UpdateDueFields", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DueEditorTestSuite) TestEditSettledDueInsufficientFunds() {
	due := s.settledDue(domain.Payable, 100, domain.TransferSavings, 555)
	req := s.editRequest(domain.Payable, 900)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()
	s.registry.On("For", domain.TransferSavings).Return(s.dest, nil).Once()
	s.userRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, s.userID).Return(s.user, nil).Once()
	s.dest.On("Kind").Return(domain.TransferSavings)
	s.dest.On("RequiresFunds").Return(true).Once()
	s.dest.On("AvailableFunds", s.user).Return(decimal.NewFromInt(500))

	_, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	s.dest.AssertNotCalled(s.T(), "UpdateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *DueEditorTestSuite) TestEditSettledDueMissingEntryStillUpdatesDue() {
	due := s.settledDue(domain.Payable, 100, domain.TransferSavings, 555)
	req := s.editRequest(domain.Payable, 150)

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()
	s.registry.On("For", domain.TransferSavings).Return(s.dest, nil).Once()
	s.userRepo.On("FindUserByIDForUpdate", mock.Anything, mock.Anything, s.userID).Return(s.user, nil).Once()
	s.dest.On("Kind").Return(domain.TransferSavings)
	s.dest.On("RequiresFunds").Return(true).Once()
	s.dest.On("AvailableFunds", s.user).Return(decimal.NewFromInt(500))
	s.dest.On("UpdateEntry", mock.Anything, mock.Anything, int64(555), s.userID, mock.Anything).Return(false, nil).Once()
	s.expectDueRowRewrite(req)

	result, err := s.service.EditDue(s.ctx, s.userID, due.DueID, req)

	s.Require().NoError(err)
	s.True(result.Amount.Equal(decimal.NewFromInt(150)))
	s.dest.AssertNotCalled(s.T(), "SettlementDeltas", mock.Anything)
	s.userRepo.AssertNotCalled(s.T(), "ApplyBalanceDeltas", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *DueEditorTestSuite) TestEditRejectsInvalidFields() {
	req := s.editRequest(domain.Payable, 100)
	req.Amount = decimal.NewFromInt(-1)

	_, err := s.service.EditDue(s.ctx, s.userID, 9, req)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.dueRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *DueEditorTestSuite) TestEditHidesForeignDues() {
	due := s.pendingDue(domain.Payable, 100)
	due.UserID = uuid.NewString()

	s.expectTx()
	s.dueRepo.On("FindDueByIDForUpdate", mock.Anything, mock.Anything, due.DueID).Return(due, nil).Once()

	_, err := s.service.EditDue(s.ctx, s.userID, due.DueID, s.editRequest(domain.Payable, 120))

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestDueEditorTestSuite(t *testing.T) {
	suite.Run(t, new(DueEditorTestSuite))
}
