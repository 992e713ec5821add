package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/core/ledger"
	portsrepo "github.com/centavohq/centavo_app/internal/core/ports/repositories"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/dto"
	"github.com/centavohq/centavo_app/internal/middleware"
)

// maxOccurrencesPerRun caps how far a single run catches up one definition,
// bounding the work of a generator that was offline for a long time.
const maxOccurrencesPerRun = 120

// recurringService turns recurring definitions into concrete ledger entries.
// Each definition carries a watermark (last generated occurrence date); the
// generator only materializes occurrences after it, and each occurrence gets
// a deterministic correlation id, so overlapping or repeated runs cannot
// duplicate entries even if a watermark update is lost.
type recurringService struct {
	recurringRepo portsrepo.RecurringRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	movementSvc   portssvc.MovementSvcFacade
}

// NewRecurringService creates a new recurring generator service.
func NewRecurringService(
	recurringRepo portsrepo.RecurringRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	movementSvc portssvc.MovementSvcFacade,
) portssvc.RecurringSvcFacade {
	return &recurringService{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		movementSvc:   movementSvc,
	}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// CreateRecurring validates and persists a new recurring definition.
func (s *recurringService) CreateRecurring(ctx context.Context, req dto.CreateRecurringRequest, userID string) (*domain.RecurringDefinition, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	if !req.Frequency.IsValid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", apperrors.ErrValidation, req.Frequency)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	def := domain.RecurringDefinition{
		RecurringID: uuid.NewString(),
		AccountID:   req.AccountID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Frequency:   req.Frequency,
		DayOfMonth:  req.DayOfMonth,
		StartDate:   req.StartDate,
		IsActive:    true,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.recurringRepo.SaveRecurring(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to save recurring definition: %w", err)
	}
	return &def, nil
}

// ListRecurring retrieves a user's recurring definitions.
func (s *recurringService) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringDefinition, error) {
	return s.recurringRepo.ListRecurringByUser(ctx, userID)
}

// UpdateRecurring edits a definition's mutable fields. Pausing a definition
// (IsActive false) keeps its watermark, so resuming it generates only from
// the next occurrence after the last one already booked.
func (s *recurringService) UpdateRecurring(ctx context.Context, recurringID string, req dto.UpdateRecurringRequest, userID string) (*domain.RecurringDefinition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	def, err := s.recurringRepo.FindRecurringByID(ctx, recurringID)
	if err != nil {
		return nil, err
	}
	if def.CreatedBy != userID {
		return nil, apperrors.ErrNotFound
	}

	updated := false
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		def.Amount = *req.Amount
		updated = true
	}
	if req.Description != nil {
		def.Description = *req.Description
		updated = true
	}
	if req.CategoryID != nil {
		def.CategoryID = req.CategoryID
		updated = true
	}
	if req.DayOfMonth != nil {
		if def.Frequency != domain.Monthly {
			return nil, fmt.Errorf("%w: day of month applies only to monthly definitions", apperrors.ErrValidation)
		}
		def.DayOfMonth = *req.DayOfMonth
		updated = true
	}
	if req.IsActive != nil {
		def.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return def, nil
	}

	def.LastUpdatedAt = time.Now().UTC()
	def.LastUpdatedBy = userID

	if err := s.recurringRepo.UpdateRecurring(ctx, *def); err != nil {
		logger.Error("Failed to update recurring definition",
			slog.String("recurring_id", recurringID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to update recurring definition: %w", err)
	}

	logger.Info("Recurring definition updated", slog.String("recurring_id", recurringID), slog.Bool("is_active", def.IsActive))
	return def, nil
}

// GenerateDue materializes every occurrence due at or before now. A failing
// definition is recorded and skipped; the remaining definitions still run.
func (s *recurringService) GenerateDue(ctx context.Context, now time.Time) (*dto.GenerateResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	defs, err := s.recurringRepo.ListActiveDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring definitions: %w", err)
	}

	result := &dto.GenerateResult{}
	for _, def := range defs {
		count, err := s.generateForDefinition(ctx, def, now)
		result.GeneratedCount += count
		if err != nil {
			logger.Error("Recurring generation failed for definition",
				slog.String("recurring_id", def.RecurringID),
				slog.String("error", err.Error()),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", def.RecurringID, err))
		}
	}

	logger.Info("Recurring generation run finished",
		slog.Int("generated", result.GeneratedCount),
		slog.Int("failed_definitions", len(result.Errors)),
	)
	return result, nil
}

// generateForDefinition walks occurrences from the watermark to now,
// committing one movement per occurrence and advancing the watermark after
// each success so a mid-run failure loses no progress.
func (s *recurringService) generateForDefinition(ctx context.Context, def domain.RecurringDefinition, now time.Time) (int, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, def.AccountID)
	if err != nil {
		return 0, fmt.Errorf("account lookup: %w", err)
	}

	generated := 0
	cursor := def.StartDate.AddDate(0, 0, -1)
	if def.LastGeneratedDate != nil {
		cursor = *def.LastGeneratedDate
	}

	for i := 0; i < maxOccurrencesPerRun; i++ {
		next := def.NextOccurrence(cursor)
		if next.After(now) {
			break
		}

		entry := domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     def.AccountID,
			Kind:          def.Kind,
			Amount:        def.Amount,
			Date:          next,
			Status:        domain.Completed,
			CategoryID:    def.CategoryID,
			Description:   def.Description,
			AuditFields:   newAuditFields(def.CreatedBy, time.Now().UTC()),
		}
		if account.Kind == domain.Credit {
			month := ledger.ResolveInvoiceMonth(next, account.ClosingDay, "")
			entry.InvoiceMonth = &month
		}

		// The correlation id is a pure function of definition and
		// occurrence date: a rerun after a lost watermark update hits the
		// coordinator's idempotent path instead of double-booking.
		correlationID := fmt.Sprintf("%s:%s", def.RecurringID, next.Format("2006-01-02"))
		if _, err := s.movementSvc.CommitEntries(ctx, correlationID, []domain.Transaction{entry}, def.Description, def.CreatedBy); err != nil {
			return generated, fmt.Errorf("occurrence %s: %w", next.Format("2006-01-02"), err)
		}
		generated++

		if err := s.recurringRepo.AdvanceWatermark(ctx, def.RecurringID, next, time.Now().UTC()); err != nil {
			return generated, fmt.Errorf("watermark update after %s: %w", next.Format("2006-01-02"), err)
		}
		cursor = next
	}
	return generated, nil
}
