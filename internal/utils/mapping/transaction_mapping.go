package mapping

import (
	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:          d.TransactionID,
		AccountID:              d.AccountID,
		ToAccountID:            d.ToAccountID,
		Kind:                   models.TransactionKind(d.Kind),
		Amount:                 d.Amount,
		Date:                   d.Date,
		Status:                 models.TransactionStatus(d.Status),
		CategoryID:             d.CategoryID,
		Description:            d.Description,
		InstallmentCount:       d.InstallmentCount,
		InstallmentIndex:       d.InstallmentIndex,
		ParentTransactionID:    d.ParentTransactionID,
		InvoiceMonth:           d.InvoiceMonth,
		InvoiceMonthOverridden: d.InvoiceMonthOverridden,
		LinkedTransactionID:    d.LinkedTransactionID,
		MovementID:             d.MovementID,
		AuditFields:            toModelAudit(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:          m.TransactionID,
		AccountID:              m.AccountID,
		ToAccountID:            m.ToAccountID,
		Kind:                   domain.TransactionKind(m.Kind),
		Amount:                 m.Amount,
		Date:                   m.Date,
		Status:                 domain.TransactionStatus(m.Status),
		CategoryID:             m.CategoryID,
		Description:            m.Description,
		InstallmentCount:       m.InstallmentCount,
		InstallmentIndex:       m.InstallmentIndex,
		ParentTransactionID:    m.ParentTransactionID,
		InvoiceMonth:           m.InvoiceMonth,
		InvoiceMonthOverridden: m.InvoiceMonthOverridden,
		LinkedTransactionID:    m.LinkedTransactionID,
		MovementID:             m.MovementID,
		AuditFields:            toDomainAudit(m.AuditFields),
	}
}
