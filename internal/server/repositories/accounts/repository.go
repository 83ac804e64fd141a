// Package accounts persists Account records behind a small key-value style
// contract. Two implementations exist: Postgres for production and an
// in-memory map for development and tests. Uniqueness per email is a
// property of the store, enforced by InsertIfAbsent in one atomic step.
package accounts

import (
	"context"

	"github.com/lifelike-app/backend/internal/server/models"
)

type Repository interface {
	// GetByEmail returns the account for the given email or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// InsertIfAbsent atomically creates the account unless one already
	// exists for the email, in which case it returns
	// common.ErrorAlreadyExists. There is no separate existence check a
	// concurrent caller could race against.
	InsertIfAbsent(ctx context.Context, account *models.Account) error

	// MarkVerified flips the verified flag to true. It is idempotent:
	// marking an already verified account succeeds. An unknown email
	// yields common.ErrorNotFound.
	MarkVerified(ctx context.Context, email string) error
}
