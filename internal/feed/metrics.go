package feed

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smasonuk/geomap3d"
)

// Metrics are kept on their own registry so several can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	PicksTotal        *prometheus.CounterVec
	ProvincesLoaded   prometheus.Gauge
	MapLoadDurationMs prometheus.Histogram
	MapLoadFailures   prometheus.Counter
	FramesTotal       prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PicksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geomap3d_picks_total",
			Help: "Total pick transitions by outcome",
		}, []string{"outcome"}),
		ProvincesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "geomap3d_provinces_loaded",
			Help: "Number of province groups in the map",
		}),
		MapLoadDurationMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geomap3d_map_load_duration_ms",
			Help:    "Map load duration in milliseconds",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
		}),
		MapLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geomap3d_map_load_failures_total",
			Help: "Total failed map loads",
		}),
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geomap3d_frames_total",
			Help: "Total frames drawn",
		}),
	}
	m.Registry.MustRegister(
		m.PicksTotal,
		m.ProvincesLoaded,
		m.MapLoadDurationMs,
		m.MapLoadFailures,
		m.FramesTotal,
	)
	return m
}

func (m *Metrics) ObservePick(ev geomap3d.PickEvent) {
	outcome := "idle"
	if ev.Picked {
		outcome = "picked"
	}
	m.PicksTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveMap(res geomap3d.MapResult) {
	m.MapLoadDurationMs.Observe(float64(res.Elapsed) / float64(time.Millisecond))
	if res.Err != nil || res.Map == nil {
		m.MapLoadFailures.Inc()
		m.ProvincesLoaded.Set(0)
		return
	}
	m.ProvincesLoaded.Set(float64(len(res.Map.Children())))
}

func (m *Metrics) ObserveFrame() {
	m.FramesTotal.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
