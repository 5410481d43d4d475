package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/config"
	"github.com/liliang-cn/askdesk/internal/desk"
	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/remote"
)

func newLogger() (*zap.Logger, error) {
	if rootFlags.debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newRemote(cfg *config.Config, logger *zap.Logger) *remote.Client {
	return remote.New(cfg.Server.BaseURL,
		remote.WithAPIKey(cfg.Server.APIKey),
		remote.WithTimeout(cfg.Server.Timeout),
		remote.WithFields(cfg.Upload.Field, cfg.Query.Field),
		remote.WithHealthPath(cfg.Connectivity.HealthPath),
		remote.WithLogger(logger.Named("remote")),
	)
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// startDesk runs d in the background and returns a func that stops it
func startDesk(ctx context.Context, d *desk.Desk, logger *zap.Logger) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := d.Run(ctx); err != nil {
			logger.Error("Desk stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// awaitSettled waits for the next settlement or for ctx
func awaitSettled(ctx context.Context, ch <-chan domain.SubmissionState) (domain.SubmissionState, error) {
	select {
	case s := <-ch:
		return s, nil
	case <-ctx.Done():
		return domain.StateIdle, ctx.Err()
	}
}
