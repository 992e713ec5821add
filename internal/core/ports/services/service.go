package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Movement    MovementSvcFacade
	Transaction TransactionSvcFacade
	Recurring   RecurringSvcFacade
}
