package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
)

const (
	// MinInstallments and MaxInstallments bound the accepted count of an
	// installment purchase.
	MinInstallments = 2
	MaxInstallments = 60
)

// InstallmentPlan describes an installment purchase to be allocated into
// ledger entries.
type InstallmentPlan struct {
	AccountID   string
	AccountKind domain.AccountKind
	Total       int64 // Smallest currency unit, strictly positive
	Count       int
	StartDate   time.Time
	CategoryID  *string
	Description string
	// Today anchors the per-piece status computation; callers pass the
	// current date so the function itself stays deterministic.
	Today time.Time
}

// AllocateInstallments splits an installment purchase into ledger entries.
//
// Credit-card purchases produce a single entry carrying the full total,
// tagged with the installment count: the issuer amortizes the future pieces
// internally and billing-period aggregation accounts for them, so only the
// initial commitment is recorded. Every other account kind produces exactly
// Count entries: each gets floor(total/count) and the remainder lands on the
// first piece, so the pieces always sum to the requested total in integer
// arithmetic. Piece i is dated StartDate+i months and its status is computed
// from its own date, never inherited.
func AllocateInstallments(plan InstallmentPlan) ([]domain.Transaction, error) {
	if plan.Total <= 0 {
		return nil, fmt.Errorf("%w: installment total must be positive, got %d", apperrors.ErrValidation, plan.Total)
	}
	if plan.Count < MinInstallments || plan.Count > MaxInstallments {
		return nil, fmt.Errorf("%w: installment count must be between %d and %d, got %d",
			apperrors.ErrValidation, MinInstallments, MaxInstallments, plan.Count)
	}

	if plan.AccountKind == domain.Credit {
		txn := domain.Transaction{
			TransactionID:    uuid.NewString(),
			AccountID:        plan.AccountID,
			Kind:             domain.Expense,
			Amount:           plan.Total,
			Date:             plan.StartDate,
			Status:           statusForDate(plan.StartDate, plan.Today),
			CategoryID:       plan.CategoryID,
			Description:      plan.Description,
			InstallmentCount: plan.Count,
			InstallmentIndex: 1,
		}
		return []domain.Transaction{txn}, nil
	}

	// A split where floor(total/count) is zero would produce zero-amount
	// pieces, so totals smaller than the count are rejected.
	if plan.Total < int64(plan.Count) {
		return nil, fmt.Errorf("%w: total %d cannot be split into %d positive pieces",
			apperrors.ErrValidation, plan.Total, plan.Count)
	}

	parentID := uuid.NewString()
	per := plan.Total / int64(plan.Count)
	remainder := plan.Total % int64(plan.Count)

	pieces := make([]domain.Transaction, plan.Count)
	for i := 0; i < plan.Count; i++ {
		amount := per
		if i == 0 {
			amount += remainder
		}
		date := plan.StartDate.AddDate(0, i, 0)
		pieces[i] = domain.Transaction{
			TransactionID:       uuid.NewString(),
			AccountID:           plan.AccountID,
			Kind:                domain.Expense,
			Amount:              amount,
			Date:                date,
			Status:              statusForDate(date, plan.Today),
			CategoryID:          plan.CategoryID,
			Description:         plan.Description,
			InstallmentCount:    plan.Count,
			InstallmentIndex:    i + 1,
			ParentTransactionID: &parentID,
		}
	}
	return pieces, nil
}

func statusForDate(date, today time.Time) domain.TransactionStatus {
	if today.IsZero() || !date.After(today) {
		return domain.Completed
	}
	return domain.Pending
}
