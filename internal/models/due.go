package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Due represents a due row. The transfer columns are only populated while
// the due is PAID; a CHECK constraint keeps them in lockstep with the status.
type Due struct {
	DueID               int64           `db:"due_id"`
	UserID              string          `db:"user_id"`
	Amount              decimal.Decimal `db:"amount"`
	Description         string          `db:"description"`
	DueDate             time.Time       `db:"due_date"`
	DueType             string          `db:"due_type"`
	DueStatus           string          `db:"due_status"`
	TransferAccountType *string         `db:"transfer_account_type"`
	TransferAccountID   *int64          `db:"transfer_account_id"`
	AuditFields
}
