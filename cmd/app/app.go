package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"gallery/internal/app/config"
	"gallery/internal/app/http/handler"
	"gallery/internal/domain"
	"gallery/internal/domain/biography"
	"gallery/internal/domain/blotter"
	"gallery/internal/domain/media"
	"gallery/internal/domain/nav"
	"gallery/internal/domain/note"
	"gallery/internal/domain/post"
	"gallery/internal/domain/score"
	"gallery/internal/domain/setting"
	"gallery/internal/domain/sitedesc"
	"gallery/internal/domain/terms"
	"gallery/internal/domain/thumb"
	"gallery/internal/domain/user"
	"gallery/internal/infrastructure/async"
	"gallery/internal/infrastructure/bus"
	"gallery/internal/infrastructure/db/pg"
	"gallery/internal/infrastructure/metrics"
	"gallery/internal/infrastructure/resize"
)

// eventLogPriority runs the audit log after every other listener.
const eventLogPriority = 100

type app struct {
	bus         *bus.Bus
	regenPool   *async.WorkerPool
	logPool     *async.WorkerPool
	registry    *prometheus.Registry
	metrics     *metrics.Recorder
	regenerator *thumb.Regenerator
	handler     *handler.Handler
}

func buildApp(ctx context.Context, cfg config.Config, log *zap.Logger, db *sql.DB) (*app, error) {
	uow := pg.NewTxManager(db)

	settingRepo := pg.NewSettingRepository(db)
	stored, err := settingRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defaults := cfg.Defaults()
	snap := setting.NewSnapshot(stored)
	settings := setting.Layered{snap, defaults}
	if err := thumb.Validate(settings); err != nil {
		return nil, fmt.Errorf("thumbnail settings: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	b := bus.New(log, bus.WithObserver(rec))
	// Regeneration tasks dispatch events that reach the event log, so the
	// two must not share workers.
	regenPool := async.NewWorkerPool(ctx, cfg.Workers.Size, 0, cfg.Workers.TaskTimeout, log)
	logPool := async.NewWorkerPool(ctx, 1, cfg.Workers.LogQueue, cfg.Workers.TaskTimeout, log)

	posts := pg.NewPostRepository(db)
	votes := pg.NewScoreRepository(db)
	userConfig := pg.NewUserConfigRepository(db)
	warehouse := media.Warehouse{Root: cfg.DataDir}

	b.Register(resize.New(log, rec), resize.Priority)
	b.Register(terms.NewListener(settings), resize.Priority+1)
	for _, l := range []domain.Listener{
		score.NewListener(uow, votes, log),
		note.Listener{},
		blotter.Listener{},
		biography.NewListener(userConfig),
		sitedesc.NewListener(settings),
	} {
		b.Register(l, domain.DefaultPriority)
	}
	b.Register(async.NewEventLog(logPool, log), eventLogPriority)

	thumbs := thumb.NewDispatcher(b, settings, warehouse)

	return &app{
		bus:         b,
		regenPool:   regenPool,
		logPool:     logPool,
		registry:    reg,
		metrics:     rec,
		regenerator: thumb.NewRegenerator(posts, thumbs, regenPool, log),
		handler: &handler.Handler{
			PostSvc:    post.NewService(uow, posts, b, thumbs, thumbs.Policy(), warehouse),
			ScoreSvc:   score.NewService(uow, votes, b),
			NoteSvc:    note.NewService(uow, pg.NewNoteRepository(db), settings, log),
			BlotterSvc: blotter.NewService(pg.NewBlotterRepository(db)),
			BioSvc:     biography.NewService(userConfig, log),
			UserSvc:    user.NewService(uow, b),
			NavSvc:     nav.NewService(b),
			SettingSvc: setting.NewService(settingRepo, snap, defaults, thumb.Validate),
			Log:        log,
		},
	}, nil
}

// close waits for regeneration first; its tasks still feed the event log.
func (a *app) close() {
	a.regenPool.Close()
	a.logPool.Close()
}
