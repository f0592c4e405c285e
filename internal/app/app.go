package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scholarship-go/internal/config"
	"scholarship-go/internal/services/scholarship"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Service *scholarship.Service
	Server  *http.Server
}

// Run serves HTTP until ctx is done, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		a.Logger.Info("HTTP server listening", zap.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Server.Shutdown(ctx)
}
