package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"horizonx-top/internal/config"
	"horizonx-top/internal/domain"
	"horizonx-top/internal/storage/sqlite"
	"horizonx-top/internal/transport/rest"
	"horizonx-top/internal/transport/websocket"
	"horizonx-top/internal/tui"
)

func (a *App) Run(ctx context.Context) error {
	switch a.cfg.Mode {
	case config.ModeSnapshot:
		return a.runSnapshot(ctx)
	case config.ModeStream:
		return a.runStream(ctx)
	case config.ModeServe:
		return a.runHTTP(ctx)
	default:
		return a.runTUI(ctx)
	}
}

// runSnapshot seeds both baselines, waits one process interval and prints a
// single view.
func (a *App) runSnapshot(ctx context.Context) error {
	if err := a.system.Seed(ctx); err != nil {
		a.log.Warn("collector seed failed", "name", "system", "error", err)
	}
	if err := a.network.Seed(ctx); err != nil {
		a.log.Warn("collector seed failed", "name", "network", "error", err)
	}

	select {
	case <-time.After(a.cfg.ProcessInterval):
	case <-ctx.Done():
		return ctx.Err()
	}

	sys, err := a.system.Collect(ctx)
	if err != nil {
		return a.printStoredView(ctx, err)
	}
	a.state.PublishSystem(sys)

	if netSnap, err := a.network.Collect(ctx); err != nil {
		a.log.Error("collector", "name", "network", "error", err)
	} else {
		a.state.PublishNetwork(netSnap)
	}

	return json.NewEncoder(a.out).Encode(a.state.Read())
}

// printStoredView falls back to the last view persisted by serve mode when
// live sampling fails. Without a database the sampling error is returned.
func (a *App) printStoredView(ctx context.Context, cause error) error {
	if a.cfg.DBPath == "" {
		return cause
	}

	db, err := sqlite.NewSqliteDB(a.cfg.DBPath, a.log)
	if err != nil {
		return errors.Join(cause, err)
	}
	defer db.Close()

	v, err := sqlite.NewSnapshotRepository(db).LatestView(ctx)
	if err != nil {
		return errors.Join(cause, err)
	}

	a.log.Warn("live sampling failed, printing stored view", "error", cause, "captured_at", v.System.CapturedAt)
	return json.NewEncoder(a.out).Encode(v)
}

func (a *App) runStream(ctx context.Context) error {
	encoder := json.NewEncoder(a.out)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.systemScheduler(func(domain.SystemSnapshot) {
			if err := encoder.Encode(a.state.Read()); err != nil {
				a.log.Error("stream encode", "error", err)
			}
		}).Start(gCtx)
	})

	g.Go(func() error {
		return a.networkScheduler().Start(gCtx)
	})

	return g.Wait()
}

func (a *App) runTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.systemScheduler().Start(gCtx)
	})

	g.Go(func() error {
		return a.networkScheduler().Start(gCtx)
	})

	g.Go(func() error {
		// leaving the dashboard stops the samplers
		defer cancel()

		err := tui.Run(gCtx, a.state, a.executor, tui.Options{
			ProcessLimit: a.cfg.ProcessLimit,
			NetworkLimit: a.cfg.NetworkLimit,
		})
		if gCtx.Err() != nil {
			return nil
		}
		return err
	})

	return g.Wait()
}

func (a *App) runHTTP(ctx context.Context) error {
	hub := websocket.NewHub(a.log)
	wsHandler := websocket.NewHandler(hub, a.state, a.log, a.cfg)

	var repo *sqlite.SnapshotRepository
	if a.cfg.DBPath != "" {
		db, err := sqlite.NewSqliteDB(a.cfg.DBPath, a.log)
		if err != nil {
			return err
		}
		defer db.Close()

		repo = sqlite.NewSnapshotRepository(db)
	}

	router := rest.NewRouter(a.cfg, &rest.RouterDeps{
		Telemetry: rest.NewTelemetryHandler(a.state, a.query, hub, a.log),
		Ws:        wsHandler.Serve,
	})

	srv := &http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	sinks := []func(domain.SystemSnapshot){
		func(domain.SystemSnapshot) {
			hub.Broadcast(domain.WsChannelMetrics, domain.WsEventMetricsUpdated, a.state.Read())
		},
	}
	if repo != nil {
		sinks = append(sinks, func(domain.SystemSnapshot) {
			if err := repo.SaveView(gCtx, a.state.Read()); err != nil {
				a.log.Error("snapshot sink", "error", err)
			}
		})
	}

	g.Go(func() error {
		return hub.Run(gCtx)
	})

	g.Go(func() error {
		return a.systemScheduler(sinks...).Start(gCtx)
	})

	g.Go(func() error {
		return a.networkScheduler().Start(gCtx)
	})

	g.Go(func() error {
		a.log.Info("http: starting server", "address", a.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Error("http: server shutdown error", "error", err)
		}
		return nil
	})

	return g.Wait()
}
