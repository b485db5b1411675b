// Package metrics exposes Prometheus counters for conversation turns.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptobuddy_turns_total",
			Help: "Total number of answered turns by response rule",
		},
		[]string{"channel", "rule"},
	)

	IntentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptobuddy_intents_detected_total",
			Help: "Total number of detected intents",
		},
		[]string{"intent"},
	)

	DisclaimersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cryptobuddy_disclaimers_total",
			Help: "Total number of replies that received a risk disclaimer",
		},
	)

	FailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptobuddy_failures_total",
			Help: "Total number of recovered failures by component",
		},
		[]string{"component"},
	)

	DigestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cryptobuddy_digests_sent_total",
			Help: "Total number of market digests delivered",
		},
	)
)

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	log.Info("metrics server listening", zap.String("addr", addr))
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info("metrics server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
