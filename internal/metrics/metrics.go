package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	LayerToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "overlaymap_layer_toggles_total",
		Help: "Checkbox toggles by layer and resulting state",
	}, []string{"layer", "state"})
	LoadFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "overlaymap_load_failures_total",
		Help: "Overlay dataset loads that failed (layer left empty)",
	}, []string{"layer"})
	LoadDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "overlaymap_load_duration_ms",
		Help:    "Overlay dataset fetch+decode duration in milliseconds",
		Buckets: []float64{5, 20, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"layer"})
	FeaturesLoaded = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "overlaymap_features_loaded",
		Help: "Features held by each overlay store",
	}, []string{"layer"})
	SelectionChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "overlaymap_selection_changes_total",
		Help: "Hover/click selection changes by layer",
	}, []string{"layer"})
	LocateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "overlaymap_locate_total",
		Help: "Center-on-me requests by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(LayerToggles)
	prometheus.MustRegister(LoadFailures)
	prometheus.MustRegister(LoadDurationMs)
	prometheus.MustRegister(FeaturesLoaded)
	prometheus.MustRegister(SelectionChanges)
	prometheus.MustRegister(LocateTotal)
}

// Handler exposes the registered metrics.
func Handler() http.Handler { return promhttp.Handler() }

// Serve starts a /metrics listener in the background. The returned stop
// function shuts it down; it is a no-op when addr is empty.
func Serve(addr string) (stop func()) {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.WithField("addr", addr).Info("metrics listener starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics listener stopped")
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
