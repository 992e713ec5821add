package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/core/ledger"
)

func checkingSnapshot(balance, limit int64) ledger.Snapshot {
	return ledger.Snapshot{
		Account: domain.Account{
			AccountID:   "acc-1",
			Kind:        domain.Checking,
			Balance:     balance,
			CreditLimit: limit,
		},
	}
}

func creditSnapshot(balance, limit, pending int64) ledger.Snapshot {
	return ledger.Snapshot{
		Account: domain.Account{
			AccountID:   "card-1",
			Kind:        domain.Credit,
			Balance:     balance,
			CreditLimit: limit,
		},
		PendingExposure: pending,
	}
}

func TestValidateIncomeAlwaysOK(t *testing.T) {
	v := ledger.NewValidator(0.2)

	res := v.Validate(checkingSnapshot(-10000, 0), 5000, domain.Income, nil)
	assert.True(t, res.OK)
	assert.False(t, res.Warn)
	assert.Equal(t, int64(-5000), res.ProjectedBalance)
}

func TestValidateExpenseNonCredit(t *testing.T) {
	v := ledger.NewValidator(0.2)

	t.Run("within balance plus overdraft", func(t *testing.T) {
		res := v.Validate(checkingSnapshot(1000, 500), 1200, domain.Expense, nil)
		assert.True(t, res.OK)
		assert.Equal(t, int64(1500), res.Available)
	})

	t.Run("rejected with shortfall", func(t *testing.T) {
		res := v.Validate(checkingSnapshot(1000, 500), 2000, domain.Expense, nil)
		assert.False(t, res.OK)
		assert.Equal(t, int64(500), res.Shortfall)
	})

	t.Run("warns near the limit", func(t *testing.T) {
		// 1500 available, spending 1300 leaves 200 < 20% of 1500.
		res := v.Validate(checkingSnapshot(1000, 500), 1300, domain.Expense, nil)
		assert.True(t, res.OK)
		assert.True(t, res.Warn)
	})

	t.Run("no warning with comfortable headroom", func(t *testing.T) {
		res := v.Validate(checkingSnapshot(1000, 500), 100, domain.Expense, nil)
		assert.True(t, res.OK)
		assert.False(t, res.Warn)
	})
}

func TestValidateExpenseCredit(t *testing.T) {
	v := ledger.NewValidator(0.2)

	t.Run("available is limit minus debt", func(t *testing.T) {
		res := v.Validate(creditSnapshot(-5000, 10000, 0), 4000, domain.Expense, nil)
		assert.True(t, res.OK)
		assert.Equal(t, int64(5000), res.Available)
	})

	t.Run("debt plus request over limit is rejected with shortfall", func(t *testing.T) {
		res := v.Validate(creditSnapshot(-5000, 10000, 0), 6000, domain.Expense, nil)
		assert.False(t, res.OK)
		assert.Equal(t, int64(5000), res.Available)
		assert.Equal(t, int64(1000), res.Shortfall)
	})

	t.Run("pending exposure shrinks availability", func(t *testing.T) {
		res := v.Validate(creditSnapshot(-5000, 10000, 3000), 4000, domain.Expense, nil)
		assert.False(t, res.OK)
		assert.Equal(t, int64(2000), res.Available)
		assert.Equal(t, int64(2000), res.Shortfall)
	})

	t.Run("credit in favor adds headroom", func(t *testing.T) {
		res := v.Validate(creditSnapshot(2000, 10000, 0), 9000, domain.Expense, nil)
		assert.True(t, res.OK)
		assert.Equal(t, int64(10000), res.Available)
	})
}

func TestValidateEditContextNetsPreviousExposure(t *testing.T) {
	v := ledger.NewValidator(0.2)

	t.Run("raising an existing expense charges only the difference", func(t *testing.T) {
		// Balance already reflects the committed 800; raising to 1000
		// needs only 200 more.
		edit := &ledger.EditContext{PreviousAmount: 800, PreviousKind: domain.Expense}
		res := v.Validate(checkingSnapshot(100, 200), 1000, domain.Expense, edit)
		assert.True(t, res.OK)
	})

	t.Run("lowering an existing expense always passes", func(t *testing.T) {
		edit := &ledger.EditContext{PreviousAmount: 1000, PreviousKind: domain.Expense}
		res := v.Validate(checkingSnapshot(-100, 0), 400, domain.Expense, edit)
		assert.True(t, res.OK)
	})

	t.Run("kind flip from income adds the old amount back", func(t *testing.T) {
		// The committed income of 500 must be paid back on top of the new
		// 300 expense: 800 total against 600 available.
		edit := &ledger.EditContext{PreviousAmount: 500, PreviousKind: domain.Income}
		res := v.Validate(checkingSnapshot(600, 0), 300, domain.Expense, edit)
		assert.False(t, res.OK)
		assert.Equal(t, int64(200), res.Shortfall)
	})
}

func TestValidatorWarnRatioIsConfigurable(t *testing.T) {
	snap := checkingSnapshot(1000, 0)

	strict := ledger.NewValidator(0.5)
	res := strict.Validate(snap, 600, domain.Expense, nil)
	assert.True(t, res.Warn, "400 remaining is under 50% of 1000")

	lax := ledger.NewValidator(0.1)
	res = lax.Validate(snap, 600, domain.Expense, nil)
	assert.False(t, res.Warn, "400 remaining is over 10% of 1000")
}
