package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/autodox/internal/config"
	"git.home.luguber.info/inful/autodox/internal/logfields"
	"git.home.luguber.info/inful/autodox/internal/metrics"
	"git.home.luguber.info/inful/autodox/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SiteFlags `embed:""`

	Interval    time.Duration `help:"Also rebuild on this interval (0 disables)" default:"0s"`
	Debounce    time.Duration `help:"Delay before rebuilding after a change" default:"2s"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsAddr != "" {
		reg := prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(reg)
		stop := serveMetrics(g.Logger, w.MetricsAddr, reg)
		defer stop()
	}

	watcher, err := watch.New(root.Config, w.service(g, recorder), watch.Options{
		Debounce: w.Debounce,
		Interval: w.Interval,
		Override: func(cfg *config.Config) error { return w.apply(cfg) },
	}, g.Logger)
	if err != nil {
		return err
	}
	return watcher.Run(g.Context)
}

func serveMetrics(logger *slog.Logger, addr string, reg *prom.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
