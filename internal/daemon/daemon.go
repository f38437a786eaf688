// Package daemon assembles the long-running process: durable stores, the
// project service, the render queue, and the HTTP API, with flock-based
// locking to prevent multiple instances sharing one data directory.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"clipforge/internal/api"
	"clipforge/internal/config"
	"clipforge/internal/encoding"
	"clipforge/internal/logging"
	"clipforge/internal/metrics"
	"clipforge/internal/preflight"
	"clipforge/internal/projects"
	"clipforge/internal/queue"
	"clipforge/internal/render"
)

// Daemon coordinates the background services and enforces single-instance
// execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *metrics.Registry

	projectStore *projects.SQLiteStore
	jobStore     *queue.SQLiteStore
	service      *projects.Service
	queue        *render.Queue
	server       *api.Server

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	serverErr chan error
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Addr         string
	LockFilePath string
	Projects     int
	Jobs         int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("prepare directories: %w", err)
	}

	projectStore, err := projects.OpenSQLite(cfg)
	if err != nil {
		return nil, fmt.Errorf("open project store: %w", err)
	}
	jobStore, err := queue.OpenSQLite(cfg)
	if err != nil {
		_ = projectStore.Close()
		return nil, fmt.Errorf("open job store: %w", err)
	}

	registry := metrics.NewRegistry()
	service := projects.NewService(projectStore, cfg.Paths.UploadsDir, registry, logger)
	encoder := encoding.NewCLI(encoding.WithBinary(cfg.FFmpegBinary()))
	jobQueue := render.NewQueue(cfg, jobStore, projectStore, encoder, registry, logger)
	server := api.NewServer(api.ServerConfig{
		Bind:      cfg.Paths.APIBind,
		Projects:  service,
		Queue:     jobQueue,
		Registry:  registry,
		Logger:    logger,
		StartTime: time.Now(),
	})

	lockPath := filepath.Join(cfg.Paths.LogDir, "clipforged.lock")
	return &Daemon{
		cfg:          cfg,
		logger:       logging.WithComponent(logger, "daemon"),
		registry:     registry,
		projectStore: projectStore,
		jobStore:     jobStore,
		service:      service,
		queue:        jobQueue,
		server:       server,
		lockPath:     lockPath,
		lock:         flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock, runs preflight checks, and begins
// serving the HTTP API in the background.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another clipforge daemon instance is already running")
	}

	results := preflight.RunAll(ctx, d.cfg)
	for _, result := range results {
		attrs := []logging.Attr{logging.String("check", result.Name)}
		if result.Detail != "" {
			attrs = append(attrs, logging.String("detail", result.Detail))
		}
		switch {
		case result.Passed:
			d.logger.Info("preflight check passed", logging.Args(attrs...)...)
		case result.Optional:
			d.logger.Warn("preflight check failed (advisory)", logging.Args(attrs...)...)
		default:
			d.logger.Error("preflight check failed", logging.Args(attrs...)...)
		}
	}
	if preflight.Blocking(results) {
		_ = d.lock.Unlock()
		return errors.New("preflight checks failed; see log for details")
	}

	if err := d.server.Listen(); err != nil {
		_ = d.lock.Unlock()
		return err
	}
	d.serverErr = make(chan error, 1)
	go func() {
		d.serverErr <- d.server.Serve()
	}()

	d.running.Store(true)
	d.logger.Info("clipforge daemon started",
		logging.String("addr", d.server.Addr()),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Wait blocks until the HTTP server exits or the context is cancelled.
func (d *Daemon) Wait(ctx context.Context) error {
	if !d.running.Load() {
		return nil
	}
	select {
	case err := <-d.serverErr:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts the HTTP server down and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := d.server.Shutdown(shutdownCtx); err != nil {
		d.logger.Warn("failed to shut down HTTP server", logging.Error(err))
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("clipforge daemon stopped")
}

// Close stops the daemon and closes the durable stores.
func (d *Daemon) Close() error {
	d.Stop()
	var firstErr error
	if err := d.jobStore.Close(); err != nil {
		firstErr = err
	}
	if err := d.projectStore.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Status reports the daemon's runtime state and store counts.
func (d *Daemon) Status(ctx context.Context) (Status, error) {
	status := Status{
		Running:      d.running.Load(),
		Addr:         d.server.Addr(),
		LockFilePath: d.lockPath,
	}
	count, err := d.service.CountProjects(ctx)
	if err != nil {
		return status, err
	}
	status.Projects = count
	jobs, err := d.queue.ListJobs(ctx)
	if err != nil {
		return status, err
	}
	status.Jobs = len(jobs)
	return status, nil
}
