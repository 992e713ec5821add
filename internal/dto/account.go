package dto

import (
	"time"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/utils"
)

// CreateAccountRequest defines the data needed to create a new account.
// Amounts are in the smallest currency unit.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,oneof=CHECKING SAVINGS CREDIT INVESTMENT"`
	InitialBalance int64              `json:"initialBalance"`
	CreditLimit    int64              `json:"creditLimit" binding:"min=0"`
	ClosingDay     int                `json:"closingDay" binding:"min=0,max=31"` // Credit kind only
	DueDay         int                `json:"dueDay" binding:"min=0,max=31"`     // Credit kind only
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	CreditLimit *int64  `json:"creditLimit"`
	ClosingDay  *int    `json:"closingDay"`
	DueDay      *int    `json:"dueDay"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	Kind           domain.AccountKind `json:"kind"`
	Balance        int64              `json:"balance"`
	DisplayBalance string             `json:"displayBalance"`
	CreditLimit    int64              `json:"creditLimit"`
	Available      int64              `json:"available"`
	ClosingDay     int                `json:"closingDay,omitempty"`
	DueDay         int                `json:"dueDay,omitempty"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		Kind:           acc.Kind,
		Balance:        acc.Balance,
		DisplayBalance: utils.FormatMinorUnits(acc.Balance, utils.DefaultPrecision),
		CreditLimit:    acc.CreditLimit,
		Available:      acc.AvailableFunds(),
		ClosingDay:     acc.ClosingDay,
		DueDay:         acc.DueDay,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
