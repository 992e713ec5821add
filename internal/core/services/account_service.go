package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	portsrepo "github.com/centavohq/centavo_app/internal/core/ports/repositories"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/dto"
	"github.com/centavohq/centavo_app/internal/middleware"
)

// accountService manages account metadata. Balances are never written here;
// the movement coordinator owns them.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.CreditLimit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrValidation)
	}
	if err := validateBillingCycle(req.Kind, req.ClosingDay, req.DueDay); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Kind:        req.Kind,
		Balance:     req.InitialBalance,
		CreditLimit: req.CreditLimit,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		IsActive:    true,
		AuditFields: newAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("kind", string(account.Kind)))
	return &account, nil
}

// GetAccountByID retrieves an account, hiding other users' accounts as not
// found.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves every account of a user.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByUser(ctx, userID)
}

// UpdateAccount applies metadata changes. A closing-day change does not
// reclassify existing card entries by itself; callers follow up with the
// invoice recompute maintenance operation.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.CreditLimit != nil {
		if *req.CreditLimit < 0 {
			return nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrValidation)
		}
		account.CreditLimit = *req.CreditLimit
		updated = true
	}
	if req.ClosingDay != nil {
		account.ClosingDay = *req.ClosingDay
		updated = true
	}
	if req.DueDay != nil {
		account.DueDay = *req.DueDay
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	if err := validateBillingCycle(account.Kind, account.ClosingDay, account.DueDay); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. Its entries remain; the ledger
// is append-only.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}
	return s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC())
}

// validateBillingCycle rejects billing-cycle fields on non-credit accounts
// and out-of-range days on credit accounts. Zero means unset.
func validateBillingCycle(kind domain.AccountKind, closingDay, dueDay int) error {
	if kind != domain.Credit {
		if closingDay != 0 || dueDay != 0 {
			return fmt.Errorf("%w: billing cycle fields apply only to credit accounts", apperrors.ErrValidation)
		}
		return nil
	}
	if closingDay < 0 || closingDay > 31 {
		return fmt.Errorf("%w: closing day must be between 1 and 31", apperrors.ErrValidation)
	}
	if dueDay < 0 || dueDay > 31 {
		return fmt.Errorf("%w: due day must be between 1 and 31", apperrors.ErrValidation)
	}
	return nil
}
