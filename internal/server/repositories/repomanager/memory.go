package repomanager

import (
	"context"

	"github.com/lifelike-app/backend/internal/server/repositories/accounts"
)

// InMemoryRepositoryManager backs the server with a process-local store.
// Useful for development and tests; nothing survives a restart.
type InMemoryRepositoryManager struct {
	accounts accounts.Repository
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{accounts: accounts.NewMemoryRepository()}
}
