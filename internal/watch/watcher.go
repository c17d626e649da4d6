// Package watch rebuilds a site when its configuration or a project
// Doxyfile changes, and optionally on a fixed interval.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/autodox/internal/build"
	"git.home.luguber.info/inful/autodox/internal/config"
	"git.home.luguber.info/inful/autodox/internal/logfields"
)

// DefaultDebounce collapses bursts of file events into one rebuild.
const DefaultDebounce = 2 * time.Second

// Reason says why a rebuild was requested.
type Reason string

const (
	ReasonInitial  Reason = "initial"
	ReasonConfig   Reason = "config"
	ReasonDoxyfile Reason = "doxyfile"
	ReasonInterval Reason = "interval"
)

// Options configures a Watcher.
type Options struct {
	// Debounce delays rebuilds after file events. Zero means DefaultDebounce.
	Debounce time.Duration

	// Interval, when positive, also rebuilds periodically.
	Interval time.Duration

	// Override is applied to every configuration load.
	Override func(*config.Config) error
}

// Watcher serializes rebuilds triggered by file events and the scheduler.
type Watcher struct {
	configPath string
	service    *build.Service
	opts       Options
	logger     *slog.Logger

	mu        sync.Mutex // held for the duration of a rebuild
	last      string
	doxyfiles map[string]bool

	pendingMu sync.Mutex
	pending   map[Reason]bool
	timer     *time.Timer

	fsw *fsnotify.Watcher
}

// New creates a watcher for the configuration at configPath.
func New(configPath string, service *build.Service, opts Options, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		configPath: abs,
		service:    service,
		opts:       opts,
		logger:     logger,
		doxyfiles:  map[string]bool{},
		pending:    map[Reason]bool{},
	}, nil
}

// Run builds once, then watches until ctx is done. Rebuild failures are
// logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()
	w.fsw = fsw

	if err := fsw.Add(filepath.Dir(w.configPath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	if _, err := w.Rebuild(ctx, ReasonInitial); err != nil {
		w.logger.Error("Initial build failed", logfields.Error(err))
	}

	if w.opts.Interval > 0 {
		s, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create gocron scheduler: %w", err)
		}
		if _, err := s.NewJob(
			gocron.DurationJob(w.opts.Interval),
			gocron.NewTask(func() { w.rebuildLogged(ctx, ReasonInterval) }),
			gocron.WithName("autodox-periodic-build"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return fmt.Errorf("failed to schedule periodic build: %w", err)
		}
		s.Start()
		defer func() {
			if err := s.Shutdown(); err != nil {
				w.logger.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
		w.logger.Info("Periodic rebuild scheduled", slog.Duration("interval", w.opts.Interval))
	}

	w.logger.Info("Watching for changes", logfields.Path(w.configPath))
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if reason, ok := w.Classify(ev); ok {
				w.logger.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				w.schedule(ctx, reason)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// Classify maps a file event to a rebuild reason.
func (w *Watcher) Classify(ev fsnotify.Event) (Reason, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	name := filepath.Clean(ev.Name)
	if name == w.configPath {
		return ReasonConfig, true
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.doxyfiles[name] {
		return ReasonDoxyfile, true
	}
	return "", false
}

func (w *Watcher) schedule(ctx context.Context, reason Reason) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[reason] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() {
		w.pendingMu.Lock()
		reasons := w.pending
		w.pending = map[Reason]bool{}
		w.pendingMu.Unlock()

		reason := ReasonConfig
		if reasons[ReasonDoxyfile] {
			reason = ReasonDoxyfile
		}
		w.rebuildLogged(ctx, reason)
	})
}

func (w *Watcher) stopTimer() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) rebuildLogged(ctx context.Context, reason Reason) {
	if ctx.Err() != nil {
		return
	}
	if _, err := w.Rebuild(ctx, reason); err != nil {
		w.logger.Error("Rebuild failed", slog.String("reason", string(reason)), logfields.Error(err))
	}
}

// Rebuild reloads the configuration and builds. A config reload that
// leaves the build state unchanged is skipped; every other reason builds.
// It reports whether a build ran.
func (w *Watcher) Rebuild(ctx context.Context, reason Reason) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cfg, err := config.Load(w.configPath)
	if err != nil {
		return false, err
	}
	if w.opts.Override != nil {
		if err := w.opts.Override(cfg); err != nil {
			return false, err
		}
	}
	site, err := w.service.Prepare(cfg)
	if err != nil {
		return false, err
	}

	key := stateKey(site)
	w.track(site)
	if reason == ReasonConfig && key == w.last {
		w.logger.Info("Configuration change does not affect the build, skipping")
		return false, nil
	}

	start := time.Now()
	w.logger.Info("Building", slog.String("reason", string(reason)))
	result, err := w.service.Build(ctx, site)
	if err != nil {
		return true, err
	}
	w.last = key
	attrs := []any{logfields.DurationMS(float64(time.Since(start).Milliseconds()))}
	if result != nil {
		attrs = append(attrs, slog.String("status", string(result.Status)), slog.Int("projects", len(result.Generated)))
	}
	w.logger.Info("Build finished", attrs...)
	return true, nil
}

func stateKey(site *build.Site) string {
	c := site.Config
	return c.Builder + "\x00" + c.SrcDir + "\x00" + c.OutDir + "\x00" + site.Fingerprint
}

// track records the Doxyfiles of site and watches their directories.
func (w *Watcher) track(site *build.Site) {
	dirs, doxyfiles := site.WatchPaths()

	w.pendingMu.Lock()
	w.doxyfiles = make(map[string]bool, len(doxyfiles))
	for _, f := range doxyfiles {
		w.doxyfiles[filepath.Clean(f)] = true
	}
	w.pendingMu.Unlock()

	if w.fsw == nil {
		return
	}
	for _, d := range dirs {
		if err := w.fsw.Add(d); err != nil {
			w.logger.Warn("Cannot watch project directory", logfields.Path(d), logfields.Error(err))
		}
	}
}
