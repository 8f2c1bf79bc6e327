package repository

import "context"

// TransactionManager runs a function within a single database transaction.
// If the function returns an error the transaction is rolled back, otherwise
// it is committed.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to the transaction
// the factory was created for.
type RepositoryFactory interface {
	// CredentialRepo returns a CredentialRepository bound to the current transaction.
	CredentialRepo() CredentialRepository
}
