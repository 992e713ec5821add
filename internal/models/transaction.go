package models

import "time"

// TransactionKind indicates the direction of a ledger entry.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// TransactionStatus indicates whether an entry has taken effect.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
)

// Transaction is the database representation of a ledger entry. Nullable
// columns are pointers.
type Transaction struct {
	TransactionID          string            `db:"transaction_id"`
	AccountID              string            `db:"account_id"`
	ToAccountID            *string           `db:"to_account_id"`
	Kind                   TransactionKind   `db:"kind"`
	Amount                 int64             `db:"amount"`
	Date                   time.Time         `db:"date"`
	Status                 TransactionStatus `db:"status"`
	CategoryID             *string           `db:"category_id"`
	Description            string            `db:"description"`
	InstallmentCount       int               `db:"installment_count"`
	InstallmentIndex       int               `db:"installment_index"`
	ParentTransactionID    *string           `db:"parent_transaction_id"`
	InvoiceMonth           *string           `db:"invoice_month"`
	InvoiceMonthOverridden bool              `db:"invoice_month_overridden"`
	LinkedTransactionID    *string           `db:"linked_transaction_id"`
	MovementID             *string           `db:"movement_id"`
	AuditFields
}
