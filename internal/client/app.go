package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/clock"
	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/crypto"
	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/service"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/internal/workers"
)

// sessionExpiredReason is passed to Logout when the identity server rejects
// the refresh token.
const sessionExpiredReason = "Session expired"

// App owns every long-lived component of one client process.
type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
	bus      *events.Bus

	logger *logger.Logger
}

// NewApp opens the local storages and wires the services over them. The
// caller must Close the returned App.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	authAdapter, err := adapter.NewHTTPAuthAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create auth adapter: %w", err)
	}

	cryptoProvider := crypto.NewProvider(crypto.Params{
		Time:    cfg.Security.ArgonTime,
		Memory:  cfg.Security.ArgonMemory,
		Threads: cfg.Security.ArgonThreads,
	})

	bus := events.NewBus(log)
	services := service.NewClientServices(storages, authAdapter, cryptoProvider, bus, clock.New(), cfg, log)

	app := &App{
		storages: storages,
		services: services,
		workers:  workers.NewWorkers(services.RefreshJob),
		bus:      bus,
		logger:   log,
	}

	bus.Subscribe(events.UserSessionExpired, func(any) {
		log.Warn().Str("func", "App.onSessionExpired").Msg("session expired, signing out")
		if err := services.Users.Logout(context.Background(), false, sessionExpiredReason); err != nil {
			log.Err(err).Str("func", "App.onSessionExpired").Msg("failed to sign out")
		}
	})

	return app, nil
}

// Services exposes the wired service layer.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Storages exposes the local storages.
func (a *App) Storages() *store.ClientStorages {
	return a.storages
}

// Bus exposes the event bus the services publish on.
func (a *App) Bus() *events.Bus {
	return a.bus
}

// StartWorkers launches the background jobs until ctx is done or Close is
// called.
func (a *App) StartWorkers(ctx context.Context) {
	a.logger.Debug().Str("func", "App.StartWorkers").Msg("starting background workers")
	a.workers.Start(ctx)
}

// Close stops the workers, drops the cached vault password and releases the
// storages.
func (a *App) Close() error {
	a.workers.Stop()
	a.services.Vault.Lock()

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.Close").Msg("failed to close storages")
		return fmt.Errorf("close storages: %w", err)
	}
	return nil
}
