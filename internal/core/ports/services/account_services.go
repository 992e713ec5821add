package services

import (
	"context"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/dto"
)

// AccountSvcFacade defines account management operations. Account metadata
// is owned here; balances are owned exclusively by the movement coordinator.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
