package domain

// AccountKind defines the product type of an account.
type AccountKind string

const (
	Checking   AccountKind = "CHECKING"
	Savings    AccountKind = "SAVINGS"
	Credit     AccountKind = "CREDIT"
	Investment AccountKind = "INVESTMENT"
)

// IsValid reports whether k is one of the known account kinds.
func (k AccountKind) IsValid() bool {
	switch k {
	case Checking, Savings, Credit, Investment:
		return true
	}
	return false
}

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
//
// Balance and CreditLimit are stored in the smallest currency unit (cents).
// For a credit account a balance <= 0 is outstanding debt and a balance > 0
// is credit in favor. CreditLimit is the overdraft allowance for non-credit
// kinds and the credit ceiling for the credit kind.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary Key (UUID)
	UserID      string      `json:"userID"`    // Owning user
	Name        string      `json:"name"`      // User-defined name
	Kind        AccountKind `json:"kind"`
	Balance     int64       `json:"balance"`
	CreditLimit int64       `json:"creditLimit"`
	ClosingDay  int         `json:"closingDay"` // 1-31, credit kind only; 0 means unset
	DueDay      int         `json:"dueDay"`     // 1-31, credit kind only; 0 means unset
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// AvailableFunds returns the amount this account can still spend before an
// expense is rejected: balance plus overdraft for bank-like kinds, remaining
// credit for the credit kind. Pending exposure on credit accounts is handled
// by the validator, not here.
func (a Account) AvailableFunds() int64 {
	if a.Kind == Credit {
		debt := int64(0)
		if a.Balance < 0 {
			debt = -a.Balance
		}
		return a.CreditLimit - debt
	}
	return a.Balance + a.CreditLimit
}
