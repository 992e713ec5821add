package ledger

import (
	"github.com/centavohq/centavo_app/internal/core/domain"
)

// DefaultWarnRatio is the near-limit warning threshold applied when no ratio
// is configured. It is a product heuristic, not an invariant, so the
// Validator keeps it as a parameter.
const DefaultWarnRatio = 0.20

// Snapshot is the read-only view of an account the validator decides over.
// PendingExposure is the summed magnitude of other pending expense entries on
// the same account (credit kind only), already excluding any entry under
// edit. The caller is responsible for how fresh the snapshot is: advisory
// checks may use a cached read, but the coordinator re-derives it from locked
// rows inside the commit.
type Snapshot struct {
	Account         domain.Account
	PendingExposure int64
}

// EditContext describes the previously committed exposure of a transaction
// being edited, so the validator charges only the net change instead of
// double-counting funds the existing entry already reserves.
type EditContext struct {
	PreviousAmount int64
	PreviousKind   domain.TransactionKind
}

// Result is the validator's decision. Available is the funds or credit
// usable before the movement; Shortfall is how much the request exceeds it
// when rejected. Warn flags a non-blocking near-limit condition.
type Result struct {
	OK               bool  `json:"ok"`
	Warn             bool  `json:"warn"`
	Available        int64 `json:"available"`
	Shortfall        int64 `json:"shortfall,omitempty"`
	ProjectedBalance int64 `json:"projectedBalance"`
}

// Validator decides whether a money movement is affordable. It never mutates
// anything: it is safe to call repeatedly for UX feedback, and the movement
// coordinator re-runs it against freshly locked account rows before any state
// change is applied.
type Validator struct {
	// WarnRatio is the fraction of available funds below which the
	// remaining headroom triggers a warning. Zero or negative falls back to
	// DefaultWarnRatio.
	WarnRatio float64
}

// NewValidator returns a Validator with the given warn ratio.
func NewValidator(warnRatio float64) Validator {
	return Validator{WarnRatio: warnRatio}
}

// Validate checks whether a movement of the given amount and kind is
// affordable against the snapshot. Income-direction movements always pass;
// deposits and bill payments never need blocking, only the resulting balance
// is computed for display.
func (v Validator) Validate(snap Snapshot, amount int64, kind domain.TransactionKind, edit *EditContext) Result {
	acc := snap.Account

	if kind == domain.Income {
		return Result{
			OK:               true,
			Available:        acc.AvailableFunds(),
			ProjectedBalance: acc.Balance + amount,
		}
	}

	available := acc.AvailableFunds()
	if acc.Kind == domain.Credit {
		available -= snap.PendingExposure
	}

	// Net change versus the transaction's previous committed exposure. An
	// edit that keeps the expense direction charges only the difference;
	// a kind flip from income to expense must pay back the old income on
	// top of the new expense.
	amountDifference := amount
	if edit != nil {
		if edit.PreviousKind == domain.Expense {
			amountDifference = amount - edit.PreviousAmount
		} else {
			amountDifference = amount + edit.PreviousAmount
		}
	}

	projected := acc.Balance - amountDifference

	if amountDifference > available {
		return Result{
			OK:               false,
			Available:        available,
			Shortfall:        amountDifference - available,
			ProjectedBalance: projected,
		}
	}

	ratio := v.WarnRatio
	if ratio <= 0 {
		ratio = DefaultWarnRatio
	}
	remaining := available - amountDifference
	warn := available > 0 && float64(remaining) < ratio*float64(available)

	return Result{
		OK:               true,
		Warn:             warn,
		Available:        available,
		ProjectedBalance: projected,
	}
}
