package services

import (
	"github.com/centavohq/centavo_app/internal/core/ledger"
	portsrepo "github.com/centavohq/centavo_app/internal/core/ports/repositories"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
)

// Repositories bundles the repository facades the services are built from.
type Repositories struct {
	Account     portsrepo.AccountRepositoryFacade
	Movement    portsrepo.MovementRepositoryWithTx
	Transaction portsrepo.TransactionRepositoryFacade
	Recurring   portsrepo.RecurringRepositoryFacade
}

// NewServiceContainer wires the service graph: the movement coordinator is
// shared by the transaction and recurring services so every balance mutation
// funnels through one place.
func NewServiceContainer(repos Repositories, validator ledger.Validator) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account)
	movementSvc := NewMovementService(repos.Movement, repos.Account, repos.Transaction, validator)
	transactionSvc := NewTransactionService(accountSvc, movementSvc, repos.Transaction, repos.Movement, repos.Account, validator)
	recurringSvc := NewRecurringService(repos.Recurring, repos.Account, movementSvc)

	return &portssvc.ServiceContainer{
		Account:     accountSvc,
		Movement:    movementSvc,
		Transaction: transactionSvc,
		Recurring:   recurringSvc,
	}
}
