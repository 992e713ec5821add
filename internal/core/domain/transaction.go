package domain

import "time"

// TransactionKind indicates the direction of a ledger entry.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// IsValid reports whether k is one of the known transaction kinds.
func (k TransactionKind) IsValid() bool {
	return k == Income || k == Expense
}

// Opposite returns the inverse direction. Used when building the second leg
// of a two-sided movement and when reversing committed entries.
func (k TransactionKind) Opposite() TransactionKind {
	if k == Income {
		return Expense
	}
	return Income
}

// TransactionStatus indicates whether an entry has taken effect on its
// account balance.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
)

// Transaction represents a single ledger entry affecting one account.
//
// Amount is a strictly positive magnitude in the smallest currency unit; the
// sign is implied by Kind. Two-sided movements (transfers, bill payments)
// exist as exactly two entries with equal amounts, opposite kinds and
// LinkedTransactionID fields pointing at each other, sharing a MovementID.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	AccountID     string            `json:"accountID"`
	ToAccountID   *string           `json:"toAccountID,omitempty"` // Destination, transfer-shaped movements only
	Kind          TransactionKind   `json:"kind"`
	Amount        int64             `json:"amount"`
	Date          time.Time         `json:"date"`
	Status        TransactionStatus `json:"status"`
	CategoryID    *string           `json:"categoryID,omitempty"` // Absent for transfer legs
	Description   string            `json:"description"`

	// Installment metadata. A non-card installment purchase is split into
	// InstallmentCount entries sharing a ParentTransactionID; a card purchase
	// stays a single entry carrying the count.
	InstallmentCount    int     `json:"installmentCount,omitempty"`
	InstallmentIndex    int     `json:"installmentIndex,omitempty"`
	ParentTransactionID *string `json:"parentTransactionID,omitempty"`

	// InvoiceMonth is the "YYYY-MM" billing period of a credit-card entry.
	// Once overridden it is authoritative and must never be recomputed.
	InvoiceMonth           *string `json:"invoiceMonth,omitempty"`
	InvoiceMonthOverridden bool    `json:"invoiceMonthOverridden"`

	LinkedTransactionID *string `json:"linkedTransactionID,omitempty"`
	MovementID          *string `json:"movementID,omitempty"` // Correlation id of the owning movement

	AuditFields
}

// BalanceEffect returns the signed change this entry applies to its account
// balance when completed. Pending entries have no balance effect; they count
// toward pending exposure on credit accounts instead.
func (t Transaction) BalanceEffect() int64 {
	if t.Status != Completed {
		return 0
	}
	if t.Kind == Income {
		return t.Amount
	}
	return -t.Amount
}
