package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpapi "gallery/internal/app/http"
	"gallery/internal/infrastructure/db/migrations"
	"gallery/internal/infrastructure/metrics"
)

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	a, err := buildApp(ctx, cfg, log, db)
	if err != nil {
		return err
	}
	defer a.close()

	a.handler.Regenerator = a.regenerator
	router := httpapi.NewRouter(a.handler, a.bus, a.metrics, metrics.Handler(a.registry), log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.Ints("bus_slots", a.bus.Slots()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	return nil
}

func runThumbs(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	a, err := buildApp(ctx, cfg, log, db)
	if err != nil {
		return err
	}

	n, err := a.regenerator.RegenerateAll(ctx)
	// close waits for every submitted task, so Failed is final after it.
	a.close()
	if err != nil {
		return fmt.Errorf("regenerate thumbnails: %w", err)
	}

	log.Info("thumbnails regenerated", zap.Int("images", n), zap.Int64("failed", a.regenerator.Failed()))
	if failed := a.regenerator.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d thumbnails failed", failed, n)
	}
	return nil
}
