// Package repomanager aggregates the repositories behind a single handle
// with an explicit lifecycle: constructed once at boot, closed on shutdown.
package repomanager

import (
	"context"

	"github.com/lifelike-app/backend/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Accounts() accounts.Repository
	Close() error
}
