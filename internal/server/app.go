// Package server initializes and runs the application: it configures the
// storage backend, wires the services, handles graceful shutdown and starts
// the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lifelike-app/backend/internal/logging"
	"github.com/lifelike-app/backend/internal/server/blob"
	"github.com/lifelike-app/backend/internal/server/config"
	"github.com/lifelike-app/backend/internal/server/httpapi"
	"github.com/lifelike-app/backend/internal/server/mailer"
	"github.com/lifelike-app/backend/internal/server/repositories/repomanager"
	"github.com/lifelike-app/backend/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	manager        repomanager.RepositoryManager
	accountService *services.AccountService
	mediaService   *services.MediaService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var manager repomanager.RepositoryManager
	var err error

	if c.DatabaseDSN == "" {
		manager = repomanager.NewInMemoryRepositoryManager()
	} else {
		manager, err = repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	as := services.NewAccountService(manager.Accounts(), mailer.NewSMTPMailer(c), c)
	ms := services.NewMediaService(blob.NewS3Store(c))

	return &App{
		config:         c,
		logger:         logger,
		manager:        manager,
		accountService: as,
		mediaService:   ms,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.accountService, app.mediaService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	if err := app.manager.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
