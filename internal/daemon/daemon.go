package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/build"
	"git.home.luguber.info/inful/relnotes/internal/config"
	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

// Daemon owns the schedule, the config watcher and the metrics server.
type Daemon struct {
	configPath string
	logger     *slog.Logger
	registry   *prom.Registry

	// APIs run first so release notes link against fresh descriptions.
	pipelines []pipeline

	mu        sync.RWMutex
	cfg       *config.Config
	last      map[build.Kind]RunSummary
	startTime time.Time

	// runMu serialises runs triggered by the schedule and by reloads.
	runMu     sync.Mutex
	scheduler *Scheduler
}

type pipeline struct {
	kind build.Kind
	svc  build.Service
}

// New wires both pipelines to a fresh Prometheus registry.
func New(configPath string, cfg *config.Config, fs afero.Fs, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prom.NewRegistry()
	registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry)

	return &Daemon{
		configPath: configPath,
		logger:     logger,
		registry:   registry,
		pipelines: []pipeline{
			{build.KindAPIDocs, build.NewAPIDocsService(fs).WithRecorder(recorder).WithLogger(logger)},
			{build.KindReleases, build.NewReleaseNotesService(fs).WithRecorder(recorder).WithLogger(logger)},
		},
		cfg:       cfg,
		last:      make(map[build.Kind]RunSummary),
		startTime: time.Now(),
	}
}

// Config returns the configuration currently in effect.
func (d *Daemon) Config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// RunOnce runs every pipeline against the current configuration. A failing
// pipeline does not stop the next one.
func (d *Daemon) RunOnce(ctx context.Context) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	cfg := d.Config()
	for _, p := range d.pipelines {
		if ctx.Err() != nil {
			return
		}
		res, err := p.svc.Run(ctx, build.Request{Config: cfg})
		sum := RunSummary{}
		if res != nil {
			sum = RunSummary{
				RunID:    res.RunID,
				Status:   res.Status,
				Finished: res.EndTime,
				Duration: res.Duration.String(),
			}
		}
		if err != nil {
			sum.Error = err.Error()
			if sum.Status == "" {
				sum.Status = build.StatusFailed
			}
		}
		d.mu.Lock()
		d.last[p.kind] = sum
		d.mu.Unlock()
	}
}

// Reload reads the configuration file again and, when it is valid, swaps it
// in and restarts the schedule, which runs the pipelines immediately. An
// invalid file keeps the previous configuration.
func (d *Daemon) Reload(_ context.Context) error {
	cfg, err := config.Load(d.configPath)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration, keeping the previous one").
			WithContext("path", d.configPath).
			Build()
	}
	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()

	if d.scheduler == nil {
		return nil
	}
	return d.scheduler.Reschedule(cfg.DaemonInterval())
}

// Handler serves /metrics and /healthz.
func (d *Daemon) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(d.registry))
	mux.HandleFunc("/healthz", d.handleHealth)
	return mux
}

// Run blocks until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.Config()

	sched, err := NewScheduler()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDaemon, "failed to create scheduler").Fatal().Build()
	}
	d.scheduler = sched
	interval := cfg.DaemonInterval()
	if _, err := sched.ScheduleEvery("relnotes", interval, func() { d.RunOnce(ctx) }); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDaemon, "failed to schedule runs").Fatal().Build()
	}
	sched.Start(ctx)
	defer func() {
		if err := sched.Stop(context.Background()); err != nil {
			d.logger.Warn("Scheduler shutdown failed", logfields.Error(err))
		}
	}()
	d.logger.Info("Daemon started", slog.String("interval", interval.String()))

	if cfg.Daemon != nil && cfg.Daemon.WatchConfig {
		watcher, err := NewConfigWatcher(d.configPath, d.Reload, d.logger)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryDaemon, "failed to watch configuration").Build()
		}
		if err := watcher.Start(ctx); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryDaemon, "failed to watch configuration").Build()
		}
		defer func() { _ = watcher.Stop() }()
	}

	errCh := make(chan error, 1)
	if cfg.Daemon != nil && cfg.Daemon.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.Daemon.MetricsAddr,
			Handler:           d.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			d.logger.Info("Serving metrics", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	select {
	case <-ctx.Done():
		d.logger.Info("Daemon stopping")
		return nil
	case err := <-errCh:
		return ferrors.WrapError(err, ferrors.CategoryDaemon, "daemon stopped").Fatal().Build()
	}
}
