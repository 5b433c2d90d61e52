// Package metrics exposes pipeline counters in Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

type Config struct {
	Enabled bool
	Addr    string
	Path    string
}

var enabled atomic.Bool

// Init enables collection and serves the metrics endpoint until ctx is done.
func Init(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if !cfg.Enabled {
		logger.Info("metrics disabled")
		return nil
	}
	enabled.Store(true)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg.Path),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.Info("starting metrics server", "addr", cfg.Addr, "path", cfg.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return nil
}

// Handler serves the metrics page and a health check.
func Handler(path string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

func IsEnabled() bool {
	return enabled.Load()
}

// RecordNotification counts one delivery attempt of a notification kind.
func RecordNotification(kind string, success bool) {
	if !IsEnabled() {
		return
	}
	name := fmt.Sprintf(`livelaunch_notifications_total{kind=%q,success="%s"}`, kind, strconv.FormatBool(success))
	metrics.GetOrCreateCounter(name).Inc()
}

// RecordScheduledEvent counts one platform call of the synchronizer.
func RecordScheduledEvent(action string, success bool) {
	if !IsEnabled() {
		return
	}
	name := fmt.Sprintf(`livelaunch_scheduled_events_total{action=%q,success="%s"}`, action, strconv.FormatBool(success))
	metrics.GetOrCreateCounter(name).Inc()
}

// RecordFeedItems counts normalized records returned by a feed adapter.
func RecordFeedItems(source string, n int) {
	if !IsEnabled() {
		return
	}
	metrics.GetOrCreateCounter(fmt.Sprintf(`livelaunch_feed_items_total{source=%q}`, source)).Add(n)
}

// ObserveCycle records how long a poll cycle took.
func ObserveCycle(d time.Duration, skipped bool) {
	if !IsEnabled() {
		return
	}
	metrics.GetOrCreateHistogram("livelaunch_cycle_duration_seconds").Update(d.Seconds())
	if skipped {
		metrics.GetOrCreateCounter("livelaunch_cycles_skipped_total").Inc()
	}
}
