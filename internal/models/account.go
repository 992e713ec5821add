package models

// AccountKind defines the product type of an account.
type AccountKind string

const (
	Checking   AccountKind = "CHECKING"
	Savings    AccountKind = "SAVINGS"
	Credit     AccountKind = "CREDIT"
	Investment AccountKind = "INVESTMENT"
)

// Account is the database representation of a financial account. Balance and
// credit_limit are bigints in the smallest currency unit.
type Account struct {
	AccountID   string      `db:"account_id"`
	UserID      string      `db:"user_id"`
	Name        string      `db:"name"`
	Kind        AccountKind `db:"kind"`
	Balance     int64       `db:"balance"`
	CreditLimit int64       `db:"credit_limit"`
	ClosingDay  int         `db:"closing_day"` // 0 = unset
	DueDay      int         `db:"due_day"`     // 0 = unset
	IsActive    bool        `db:"is_active"`
	AuditFields
}
