package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/lifelike-app/backend/internal/common"
	"github.com/lifelike-app/backend/internal/server/models"
)

// MemoryRepository is a process-local account store keyed by email. The
// mutex makes InsertIfAbsent atomic, so it honors the same uniqueness
// contract as the Postgres implementation.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]models.Account)}
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	// copy so callers cannot mutate the stored record
	return &account, nil
}

func (r *MemoryRepository) InsertIfAbsent(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Email]; ok {
		return common.ErrorAlreadyExists
	}

	stored := *account
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.accounts[account.Email] = stored

	return nil
}

func (r *MemoryRepository) MarkVerified(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[email]
	if !ok {
		return common.ErrorNotFound
	}

	account.Verified = true
	r.accounts[email] = account

	return nil
}
