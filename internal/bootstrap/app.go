package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/skycast/internal/domain/widget"
	"github.com/yanqian/skycast/internal/infra/config"
)

const shutdownTimeout = 10 * time.Second

type closer interface {
	Close()
}

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	store  widget.Store
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, store widget.Store) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, store: store}
}

// Run starts the HTTP server and blocks until shutdown. The session store is
// released once the server has stopped accepting requests.
func (a *App) Run(ctx context.Context) error {
	defer a.closeStore()
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting",
			"address", a.cfg.HTTP.Address,
			"default_city", a.cfg.Weather.DefaultCity,
			"forecast_days", a.cfg.Weather.ForecastDays,
			"valkey", a.cfg.Session.Valkey.Enabled,
		)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) closeStore() {
	if c, ok := a.store.(closer); ok {
		c.Close()
		a.logger.Info("session store closed")
	}
}
