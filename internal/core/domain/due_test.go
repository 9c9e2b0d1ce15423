package domain_test

import (
	"testing"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSettlementEntryType(t *testing.T) {
	assert.Equal(t, domain.EntryOut, domain.SettlementEntryType(domain.Payable))
	assert.Equal(t, domain.EntryIn, domain.SettlementEntryType(domain.Receivable))
}

func TestSettlementBalanceEffect(t *testing.T) {
	amount := decimal.NewFromInt(75)
	assert.True(t, domain.SettlementBalanceEffect(domain.Payable, amount).Equal(amount.Neg()))
	assert.True(t, domain.SettlementBalanceEffect(domain.Receivable, amount).Equal(amount))
}

func TestAggregateDelta(t *testing.T) {
	amount := decimal.NewFromInt(30)

	payable := domain.AggregateDelta(domain.Payable, amount)
	assert.True(t, payable.DuePayable.Equal(amount))
	assert.True(t, payable.DueReceivable.IsZero())

	receivable := domain.AggregateDelta(domain.Receivable, amount.Neg())
	assert.True(t, receivable.DueReceivable.Equal(amount.Neg()))
	assert.True(t, receivable.DuePayable.IsZero())
}

func TestDue_IsSettled(t *testing.T) {
	dest := domain.TransferSavings
	entryID := int64(42)

	tests := []struct {
		name string
		due  domain.Due
		want bool
	}{
		{
			name: "pending due with no transfer reference",
			due:  domain.Due{DueStatus: domain.DuePending},
			want: false,
		},
		{
			name: "paid due with transfer reference",
			due: domain.Due{
				DueStatus:           domain.DuePaid,
				TransferAccountType: &dest,
				TransferAccountID:   &entryID,
			},
			want: true,
		},
		{
			name: "paid due missing transfer id",
			due: domain.Due{
				DueStatus:           domain.DuePaid,
				TransferAccountType: &dest,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.due.IsSettled())
		})
	}
}

func TestTransferAccountType_IsExpenseCategory(t *testing.T) {
	assert.True(t, domain.TransferNeed.IsExpenseCategory())
	assert.True(t, domain.TransferWant.IsExpenseCategory())
	assert.False(t, domain.TransferSavings.IsExpenseCategory())
	assert.False(t, domain.TransferMiscellaneous.IsExpenseCategory())
}

func TestExpenseBook_Allocations(t *testing.T) {
	book := domain.ExpenseBook{
		MonthlyIncome:      decimal.NewFromInt(1000),
		NeedsPercent:       decimal.NewFromInt(50),
		WantsPercent:       decimal.NewFromInt(30),
		InvestmentsPercent: decimal.NewFromInt(20),
	}

	assert.True(t, book.NeedsAllocation().Equal(decimal.NewFromInt(500)))
	assert.True(t, book.WantsAllocation().Equal(decimal.NewFromInt(300)))
	assert.True(t, book.InvestmentsAllocation().Equal(decimal.NewFromInt(200)))
}

func TestMonthStart(t *testing.T) {
	ts := time.Date(2025, time.March, 17, 15, 4, 5, 0, time.FixedZone("IST", 5*3600+1800))
	got := domain.MonthStart(ts)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), got)
}
