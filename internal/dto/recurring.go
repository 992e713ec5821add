package dto

import (
	"time"

	"github.com/centavohq/centavo_app/internal/core/domain"
)

// CreateRecurringRequest defines a new recurring transaction definition.
type CreateRecurringRequest struct {
	AccountID   string                    `json:"accountID" binding:"required"`
	Kind        domain.TransactionKind    `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount      int64                     `json:"amount" binding:"required,gt=0"`
	CategoryID  *string                   `json:"categoryID"`
	Description string                    `json:"description"`
	Frequency   domain.RecurringFrequency `json:"frequency" binding:"required,oneof=DAILY WEEKLY MONTHLY"`
	DayOfMonth  int                       `json:"dayOfMonth" binding:"min=0,max=31"` // Monthly only
	StartDate   time.Time                 `json:"startDate" binding:"required"`
}

// UpdateRecurringRequest defines the mutable fields of a definition.
// Pointers distinguish zero-value updates from fields not provided. Setting
// IsActive false stops generation; the watermark is kept so reactivating
// does not back-fill the paused stretch twice.
type UpdateRecurringRequest struct {
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0"`
	Description *string `json:"description"`
	CategoryID  *string `json:"categoryID"`
	DayOfMonth  *int    `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
	IsActive    *bool   `json:"isActive"`
}

// RecurringResponse defines the data returned for a recurring definition.
type RecurringResponse struct {
	RecurringID       string                    `json:"recurringID"`
	AccountID         string                    `json:"accountID"`
	Kind              domain.TransactionKind    `json:"kind"`
	Amount            int64                     `json:"amount"`
	CategoryID        *string                   `json:"categoryID,omitempty"`
	Description       string                    `json:"description"`
	Frequency         domain.RecurringFrequency `json:"frequency"`
	DayOfMonth        int                       `json:"dayOfMonth,omitempty"`
	StartDate         time.Time                 `json:"startDate"`
	LastGeneratedDate *time.Time                `json:"lastGeneratedDate,omitempty"`
	IsActive          bool                      `json:"isActive"`
}

// GenerateResult reports one run of the recurring generator. A failing
// definition does not abort the run; its error is collected here and the
// remaining definitions are still processed.
type GenerateResult struct {
	GeneratedCount int      `json:"generatedCount"`
	Errors         []string `json:"errors,omitempty"`
}

// ToRecurringResponse converts a domain.RecurringDefinition.
func ToRecurringResponse(def *domain.RecurringDefinition) RecurringResponse {
	return RecurringResponse{
		RecurringID:       def.RecurringID,
		AccountID:         def.AccountID,
		Kind:              def.Kind,
		Amount:            def.Amount,
		CategoryID:        def.CategoryID,
		Description:       def.Description,
		Frequency:         def.Frequency,
		DayOfMonth:        def.DayOfMonth,
		StartDate:         def.StartDate,
		LastGeneratedDate: def.LastGeneratedDate,
		IsActive:          def.IsActive,
	}
}

// ToRecurringResponses converts a slice of definitions.
func ToRecurringResponses(defs []domain.RecurringDefinition) []RecurringResponse {
	out := make([]RecurringResponse, len(defs))
	for i := range defs {
		out[i] = ToRecurringResponse(&defs[i])
	}
	return out
}
