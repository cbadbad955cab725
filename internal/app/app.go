// Package app wires the samplers, shared state and front ends for each run
// mode.
package app

import (
	"io"
	"os"

	"horizonx-top/internal/command"
	"horizonx-top/internal/config"
	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
	"horizonx-top/internal/metrics"
	"horizonx-top/internal/metrics/collector/network"
	"horizonx-top/internal/metrics/collector/system"
	"horizonx-top/internal/probe"
	"horizonx-top/internal/query"
	"horizonx-top/internal/storage/snapshot"
)

// Probes are the three independent probe handles: one per sampler and one
// for on-demand queries.
type Probes struct {
	System  domain.SystemProbe
	Network domain.NetworkProbe
	Query   domain.SystemProbe
}

func DefaultProbes() Probes {
	return Probes{
		System:  probe.NewSystem(),
		Network: probe.NewNetwork(),
		Query:   probe.NewSystem(),
	}
}

type App struct {
	cfg *config.Config
	log logger.Logger
	out io.Writer

	state    *snapshot.State
	system   *system.Collector
	network  *network.Collector
	query    *query.Service
	executor *command.Executor
}

func New(cfg *config.Config, log logger.Logger, probes Probes) *App {
	q := query.NewService(probes.Query, log)

	return &App{
		cfg: cfg,
		log: log,
		out: os.Stdout,

		state:    snapshot.NewState(),
		system:   system.NewCollector(probes.System, log),
		network:  network.NewCollector(probes.Network, log),
		query:    q,
		executor: command.NewExecutor(q),
	}
}

func (a *App) systemScheduler(sinks ...func(domain.SystemSnapshot)) *metrics.Scheduler[domain.SystemSnapshot] {
	return metrics.NewScheduler[domain.SystemSnapshot](
		"system",
		a.cfg.ProcessInterval,
		a.log,
		a.system,
		a.state.Paused,
		func(s domain.SystemSnapshot) {
			a.state.PublishSystem(s)
			for _, sink := range sinks {
				sink(s)
			}
		},
	)
}

func (a *App) networkScheduler() *metrics.Scheduler[domain.NetworkSnapshot] {
	return metrics.NewScheduler[domain.NetworkSnapshot](
		"network",
		a.cfg.NetworkInterval,
		a.log,
		a.network,
		a.state.Paused,
		a.state.PublishNetwork,
	)
}
