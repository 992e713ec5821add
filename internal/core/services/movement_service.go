package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/core/ledger"
	portsrepo "github.com/centavohq/centavo_app/internal/core/ports/repositories"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/dto"
	"github.com/centavohq/centavo_app/internal/middleware"
)

var (
	ErrSameAccount        = errors.New("source and destination accounts must differ")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrNotCreditAccount   = errors.New("payment destination must be a credit account")
	ErrCreditAsBank       = errors.New("payment source must not be a credit account")
	ErrMovementInFlight   = errors.New("a movement with this correlation id is still in flight")
	ErrAlreadyReversed    = errors.New("movement is already reversed")
	ErrReversalOfReversal = errors.New("cannot reverse a reversal movement")
)

// movementService is the atomic ledger transaction coordinator. It is the
// only writer of account balances: every movement runs REQUESTED → VALIDATED
// → PERSISTED → APPLIED inside a single database transaction, so the commit
// is what makes a movement CONFIRMED and no reader can observe a partial
// state. The affordability check is re-derived from FOR UPDATE-locked rows
// here, which closes the check-then-act race the advisory pre-check leaves
// open.
type movementService struct {
	movementRepo portsrepo.MovementRepositoryWithTx
	accountRepo  portsrepo.AccountRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	validator    ledger.Validator
}

// NewMovementService creates the coordinator.
func NewMovementService(
	movementRepo portsrepo.MovementRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	validator ledger.Validator,
) portssvc.MovementSvcFacade {
	return &movementService{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		validator:    validator,
	}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// ExecuteTransfer commits a two-sided movement between two accounts.
func (s *movementService) ExecuteTransfer(ctx context.Context, req dto.TransferRequest, userID string) (*dto.MovementResponse, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	movement := s.newMovement(req.CorrelationID, domain.MovementTransfer, req.Amount, req.Date, req.Description, userID)
	entries := s.buildPair(movement, req.FromAccountID, req.ToAccountID, req.Amount, req.Date, req.Description, userID)
	return s.commit(ctx, movement, entries, nil, userID)
}

// ExecutePayment commits a credit-card bill payment. Structurally a transfer
// with the bank account as source and the credit account as destination; the
// kind checks are the only difference.
func (s *movementService) ExecutePayment(ctx context.Context, req dto.PaymentRequest, userID string) (*dto.MovementResponse, error) {
	if req.CreditAccountID == req.BankAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	movement := s.newMovement(req.CorrelationID, domain.MovementPayment, req.Amount, req.Date, req.Description, userID)
	entries := s.buildPair(movement, req.BankAccountID, req.CreditAccountID, req.Amount, req.Date, req.Description, userID)

	kindCheck := func(accounts map[string]domain.Account) error {
		if accounts[req.CreditAccountID].Kind != domain.Credit {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNotCreditAccount)
		}
		if accounts[req.BankAccountID].Kind == domain.Credit {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCreditAsBank)
		}
		return nil
	}
	return s.commit(ctx, movement, entries, kindCheck, userID)
}

// CommitEntries commits pre-built single-account entries (a plain transaction
// or an installment group) through the uniform movement path.
func (s *movementService) CommitEntries(ctx context.Context, correlationID string, entries []domain.Transaction, description string, userID string) (*dto.MovementResponse, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: movement requires at least one entry", apperrors.ErrValidation)
	}
	accountID := entries[0].AccountID
	var total int64
	for _, e := range entries {
		if e.AccountID != accountID {
			return nil, fmt.Errorf("%w: all entries of a single-account movement must target one account", apperrors.ErrValidation)
		}
		if e.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		total += e.Amount
	}

	movement := s.newMovement(&correlationID, domain.MovementEntry, total, entries[0].Date, description, userID)
	for i := range entries {
		entries[i].MovementID = &movement.MovementID
	}
	return s.commit(ctx, movement, entries, nil, userID)
}

// ReverseMovement commits the exact inverse of a confirmed movement. The
// reversal's correlation id is derived from the original's, so retrying a
// reversal is absorbed by the same idempotent path as any other commit.
func (s *movementService) ReverseMovement(ctx context.Context, movementID string, userID string) (*dto.MovementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	if original.Kind == domain.MovementReversal {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReversalOfReversal)
	}
	if original.Status == domain.MovementReversed {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyReversed)
	}
	if original.Status != domain.MovementConfirmed {
		return nil, fmt.Errorf("%w: movement status is %s, expected CONFIRMED", apperrors.ErrConflict, original.Status)
	}

	originalEntries, err := s.movementRepo.FindTransactionsByMovementID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries of movement %s: %w", movementID, err)
	}

	now := time.Now().UTC()
	reversalID := movementID + ":rev"
	reversal := domain.Movement{
		MovementID:         reversalID,
		Kind:               domain.MovementReversal,
		Status:             domain.MovementRequested,
		Amount:             original.Amount,
		Date:               original.Date,
		Description:        fmt.Sprintf("Reversal of: %s", original.Description),
		OriginalMovementID: &original.MovementID,
		AuditFields:        newAuditFields(userID, now),
	}

	// Inverse entries: kinds swapped, same amounts and accounts. The pair
	// linkage is rebuilt between the new rows; originals stay untouched.
	// Status mirrors the original so a piece that never hit the balance is
	// not "un-applied".
	inverse := make([]domain.Transaction, len(originalEntries))
	for i, orig := range originalEntries {
		inverse[i] = domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     orig.AccountID,
			ToAccountID:   orig.ToAccountID,
			Kind:          orig.Kind.Opposite(),
			Amount:        orig.Amount,
			Date:          orig.Date,
			Status:        orig.Status,
			Description:   fmt.Sprintf("Reversal of: %s", orig.Description),
			MovementID:    &reversalID,
			AuditFields:   newAuditFields(userID, now),
		}
	}
	linkPair(inverse)

	resp, err := s.commit(ctx, reversal, inverse, nil, userID)
	if err != nil {
		return nil, err
	}
	logger.Info("Movement reversed", slog.String("movement_id", movementID), slog.String("reversal_id", reversalID))
	return resp, nil
}

// GetMovement fetches a movement with its entries.
func (s *movementService) GetMovement(ctx context.Context, movementID string) (*dto.MovementResponse, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	entries, err := s.movementRepo.FindTransactionsByMovementID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToMovementResponse(movement, entries, nil)
	return &resp, nil
}

// ValidateMovement runs the advisory affordability check. Its result is for
// responsive UX only: commit re-derives the decision from locked rows.
func (s *movementService) ValidateMovement(ctx context.Context, req dto.ValidateMovementRequest, userID string) (*dto.ValidateMovementResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	snap := ledger.Snapshot{Account: *account}
	if account.Kind == domain.Credit && req.Kind == domain.Expense {
		pending, err := s.movementRepo.SumPendingExpenses(ctx, req.AccountID, req.EditTransactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute pending exposure: %w", err)
		}
		snap.PendingExposure = pending
	}

	var edit *ledger.EditContext
	if req.EditTransactionID != nil {
		prev, err := s.txnRepo.FindTransactionByID(ctx, *req.EditTransactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transaction under edit: %w", err)
		}
		edit = &ledger.EditContext{PreviousAmount: prev.Amount, PreviousKind: prev.Kind}
	}

	result := s.validator.Validate(snap, req.Amount, req.Kind, edit)
	return &dto.ValidateMovementResponse{Result: result}, nil
}

// commit drives a movement through the state machine inside one database
// transaction. kindCheck, when present, runs against the locked accounts
// before validation. Any error rolls the whole movement back; an existing
// confirmed movement with the same id short-circuits to its stored result.
func (s *movementService) commit(ctx context.Context, movement domain.Movement, entries []domain.Transaction, kindCheck func(map[string]domain.Account) error, userID string) (*dto.MovementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.movementRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin movement transaction: %w", err)
	}
	// Rollback is a no-op once the transaction is committed.
	defer s.movementRepo.Rollback(ctx, tx)

	// Idempotency: a retry with a known correlation id returns the original
	// result instead of applying the movement a second time.
	existing, err := s.movementRepo.FindMovementByIDForUpdateInTx(ctx, tx, movement.MovementID)
	if err == nil {
		if existing.Status == domain.MovementConfirmed || existing.Status == domain.MovementReversed {
			logger.Info("Duplicate movement submission absorbed", slog.String("movement_id", movement.MovementID))
			return s.priorResult(ctx, existing)
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrMovementInFlight)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed idempotency lookup for movement %s: %w", movement.MovementID, err)
	}

	// Lock every touched account in sorted id order so two movements over
	// the same pair cannot deadlock.
	accountIDs := collectAccountIDs(entries)
	locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := locked[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s: %s", apperrors.ErrValidation, id, ErrAccountInactive)
		}
	}
	if kindCheck != nil {
		if err := kindCheck(locked); err != nil {
			return nil, err
		}
	}

	// Authoritative affordability check on the locked snapshots. Reversals
	// skip it: restoring the pre-movement balances must always be possible.
	if movement.Kind != domain.MovementReversal {
		if err := s.validateLocked(ctx, tx, locked, entries); err != nil {
			return nil, err
		}
	}
	movement.Status = domain.MovementValidated

	balanceChanges := make(map[string]int64)
	for _, e := range entries {
		balanceChanges[e.AccountID] += e.BalanceEffect()
	}

	movement.Status = domain.MovementConfirmed // Visible status; commit below makes it real
	if err := s.movementRepo.InsertMovementInTx(ctx, tx, movement); err != nil {
		return nil, fmt.Errorf("failed to persist movement %s: %w", movement.MovementID, err)
	}
	if err := s.movementRepo.InsertTransactionsInTx(ctx, tx, entries); err != nil {
		return nil, fmt.Errorf("failed to persist entries of movement %s: %w", movement.MovementID, err)
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, movement.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to apply balance changes for movement %s: %w", movement.MovementID, err)
	}

	if movement.Kind == domain.MovementReversal && movement.OriginalMovementID != nil {
		if err := s.movementRepo.MarkMovementReversedInTx(ctx, tx, *movement.OriginalMovementID, movement.MovementID, userID, movement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to mark original movement reversed: %w", err)
		}
	}

	if err := s.movementRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit movement %s: %w", movement.MovementID, err)
	}

	logger.Info("Movement confirmed",
		slog.String("movement_id", movement.MovementID),
		slog.String("kind", string(movement.Kind)),
		slog.Int64("amount", movement.Amount),
	)

	updated := make(map[string]domain.Account, len(locked))
	for id, acc := range locked {
		acc.Balance += balanceChanges[id]
		updated[id] = acc
	}
	resp := dto.ToMovementResponse(&movement, entries, updated)
	return &resp, nil
}

// validateLocked reruns the affordability decision against the locked rows,
// grouping expense entries per account so an installment group is charged as
// one commitment.
func (s *movementService) validateLocked(ctx context.Context, tx pgx.Tx, locked map[string]domain.Account, entries []domain.Transaction) error {
	expenseTotals := make(map[string]int64)
	for _, e := range entries {
		if e.Kind == domain.Expense {
			expenseTotals[e.AccountID] += e.Amount
		}
	}

	for accountID, total := range expenseTotals {
		account := locked[accountID]
		snap := ledger.Snapshot{Account: account}
		if account.Kind == domain.Credit {
			pending, err := s.movementRepo.SumPendingExpensesInTx(ctx, tx, accountID, nil)
			if err != nil {
				return fmt.Errorf("failed to compute pending exposure for account %s: %w", accountID, err)
			}
			snap.PendingExposure = pending
		}

		result := s.validator.Validate(snap, total, domain.Expense, nil)
		if !result.OK {
			return &apperrors.InsufficientFundsError{Available: result.Available, Shortfall: result.Shortfall}
		}
	}
	return nil
}

// priorResult rebuilds the response of an already-confirmed movement.
func (s *movementService) priorResult(ctx context.Context, movement *domain.Movement) (*dto.MovementResponse, error) {
	entries, err := s.movementRepo.FindTransactionsByMovementID(ctx, movement.MovementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries of movement %s: %w", movement.MovementID, err)
	}
	resp := dto.ToMovementResponse(movement, entries, nil)
	return &resp, nil
}

func (s *movementService) newMovement(correlationID *string, kind domain.MovementKind, amount int64, date time.Time, description string, userID string) domain.Movement {
	id := uuid.NewString()
	if correlationID != nil && *correlationID != "" {
		id = *correlationID
	}
	return domain.Movement{
		MovementID:  id,
		Kind:        kind,
		Status:      domain.MovementRequested,
		Amount:      amount,
		Date:        date,
		Description: description,
		AuditFields: newAuditFields(userID, time.Now().UTC()),
	}
}

// buildPair constructs the debit/credit legs of a two-sided movement: equal
// amounts, opposite kinds, mutually linked, sharing the movement id.
func (s *movementService) buildPair(movement domain.Movement, fromID, toID string, amount int64, date time.Time, description string, userID string) []domain.Transaction {
	now := movement.CreatedAt
	debit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     fromID,
		ToAccountID:   &toID,
		Kind:          domain.Expense,
		Amount:        amount,
		Date:          date,
		Status:        domain.Completed,
		Description:   description,
		MovementID:    &movement.MovementID,
		AuditFields:   newAuditFields(userID, now),
	}
	credit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     toID,
		Kind:          domain.Income,
		Amount:        amount,
		Date:          date,
		Status:        domain.Completed,
		Description:   description,
		MovementID:    &movement.MovementID,
		AuditFields:   newAuditFields(userID, now),
	}
	pair := []domain.Transaction{debit, credit}
	linkPair(pair)
	return pair
}

// linkPair points the LinkedTransactionID fields of a two-entry movement at
// each other. Single entries and larger groups are left unlinked.
func linkPair(entries []domain.Transaction) {
	if len(entries) != 2 {
		return
	}
	entries[0].LinkedTransactionID = &entries[1].TransactionID
	entries[1].LinkedTransactionID = &entries[0].TransactionID
}

func collectAccountIDs(entries []domain.Transaction) []string {
	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; !ok {
			seen[e.AccountID] = struct{}{}
			ids = append(ids, e.AccountID)
		}
	}
	sort.Strings(ids)
	return ids
}

func newAuditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
