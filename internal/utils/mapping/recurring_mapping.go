package mapping

import (
	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/models"
)

// ToModelRecurring converts a domain RecurringDefinition to its model.
func ToModelRecurring(d domain.RecurringDefinition) models.RecurringDefinition {
	return models.RecurringDefinition{
		RecurringID:       d.RecurringID,
		AccountID:         d.AccountID,
		Kind:              models.TransactionKind(d.Kind),
		Amount:            d.Amount,
		CategoryID:        d.CategoryID,
		Description:       d.Description,
		Frequency:         models.RecurringFrequency(d.Frequency),
		DayOfMonth:        d.DayOfMonth,
		StartDate:         d.StartDate,
		LastGeneratedDate: d.LastGeneratedDate,
		IsActive:          d.IsActive,
		AuditFields:       toModelAudit(d.AuditFields),
	}
}

// ToDomainRecurring converts a model RecurringDefinition to its domain form.
func ToDomainRecurring(m models.RecurringDefinition) domain.RecurringDefinition {
	return domain.RecurringDefinition{
		RecurringID:       m.RecurringID,
		AccountID:         m.AccountID,
		Kind:              domain.TransactionKind(m.Kind),
		Amount:            m.Amount,
		CategoryID:        m.CategoryID,
		Description:       m.Description,
		Frequency:         domain.RecurringFrequency(m.Frequency),
		DayOfMonth:        m.DayOfMonth,
		StartDate:         m.StartDate,
		LastGeneratedDate: m.LastGeneratedDate,
		IsActive:          m.IsActive,
		AuditFields:       toDomainAudit(m.AuditFields),
	}
}
