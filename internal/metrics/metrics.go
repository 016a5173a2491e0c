// Package metrics exposes frame-loop counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "galleria"

// Recorder holds the collectors updated by the frame loop. A nil Recorder is
// valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	frames       prometheus.Counter
	skipped      prometheus.Counter
	frameDelta   prometheus.Histogram
	hoverChanges *prometheus.CounterVec
	teleports    *prometheus.CounterVec
	speed        prometheus.Gauge
	lookEngaged  prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames integrated by the movement loop.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_skipped_total",
			Help:      "Frames skipped because of a negative or non-finite delta.",
		}),
		frameDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_delta_seconds",
			Help:      "Elapsed time between integrated frames.",
			Buckets:   []float64{0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25, 1},
		}),
		hoverChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hover_changes_total",
			Help:      "Hovered zone transitions, labelled by the zone entered (empty when leaving).",
		}, []string{"zone"}),
		teleports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teleports_total",
			Help:      "Teleport requests by result.",
		}, []string{"result"}),
		speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "camera_speed",
			Help:      "Planar camera speed in world units per second.",
		}),
		lookEngaged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "look_engaged",
			Help:      "1 while the pointer is captured for look control.",
		}),
	}
	r.registry.MustRegister(r.frames, r.skipped, r.frameDelta, r.hoverChanges, r.teleports, r.speed, r.lookEngaged)
	return r
}

func (r *Recorder) Frame(dt, speed float64) {
	if r == nil {
		return
	}
	r.frames.Inc()
	r.frameDelta.Observe(dt)
	r.speed.Set(speed)
}

func (r *Recorder) FrameSkipped() {
	if r == nil {
		return
	}
	r.skipped.Inc()
}

func (r *Recorder) HoverChanged(zoneID string) {
	if r == nil {
		return
	}
	r.hoverChanges.WithLabelValues(zoneID).Inc()
}

func (r *Recorder) Teleport(ok bool) {
	if r == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "invalid_zone"
	}
	r.teleports.WithLabelValues(result).Inc()
}

func (r *Recorder) LookEngaged(engaged bool) {
	if r == nil {
		return
	}
	if engaged {
		r.lookEngaged.Set(1)
	} else {
		r.lookEngaged.Set(0)
	}
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
