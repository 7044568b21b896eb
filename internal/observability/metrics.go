package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_forecast"

// Metrics holds the Prometheus counters, histograms, and gauges for the forecast service.
type Metrics struct {
	ServiceRunning prometheus.Gauge

	// Refresh orchestration metrics.
	Refreshes       *prometheus.CounterVec // labels: trigger={initial,schedule,bootstrap,manual}, outcome={success,failure,skipped}
	FetchFailures   *prometheus.CounterVec // labels: source={forecast,warnings}
	RefreshDuration prometheus.Histogram
	LastUpdate      prometheus.Gauge

	// Current view.
	ForecastDays   prometheus.Gauge
	ForecastPoints prometheus.Gauge
	ActiveWarnings prometheus.Gauge

	// Cache metrics.
	CacheLookups *prometheus.CounterVec // labels: kind={series,warnings}, result={hit,miss}
	CacheEntries prometheus.Gauge

	// DWD open-data metrics.
	DWDRequests        *prometheus.CounterVec   // labels: resource={station_catalog,warncell_catalog,forecast,warnings}, outcome={success,error}
	DWDRequestDuration *prometheus.HistogramVec // labels: resource
	SkippedDocuments   *prometheus.CounterVec   // labels: resource

	// View publishing metrics.
	ViewsPublished prometheus.Counter
	PublishErrors  prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.ServiceRunning,
		m.Refreshes,
		m.FetchFailures,
		m.RefreshDuration,
		m.LastUpdate,
		m.ForecastDays,
		m.ForecastPoints,
		m.ActiveWarnings,
		m.CacheLookups,
		m.CacheEntries,
		m.DWDRequests,
		m.DWDRequestDuration,
		m.SkippedDocuments,
		m.ViewsPublished,
		m.PublishErrors,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that are not exported anywhere. It
// backs components constructed without explicit metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics(true)
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		ServiceRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "service_running",
			Help:      help("1 while the refresh loop is active, 0 when shut down."),
		}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      help("Forecast refreshes by trigger and outcome."),
		}, []string{"trigger", "outcome"}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      help("Provider fetches that failed and fell back to cached data."),
		}, []string{"source"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      help("Duration of a complete fetch-merge-summarize refresh."),
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_update_timestamp_seconds",
			Help:      help("Unix time of the last refresh that replaced the view."),
		}),
		ForecastDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_days",
			Help:      help("Number of days in the current forecast view."),
		}),
		ForecastPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_points",
			Help:      help("Number of forecast steps in the current view."),
		}),
		ActiveWarnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_warnings",
			Help:      help("Number of warnings in the current view."),
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      help("Cache lookups by kind and result."),
		}, []string{"kind", "result"}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      help("Number of provider identifiers held in the cache."),
		}),
		DWDRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dwd_requests_total",
			Help:      help("DWD open-data requests by resource and outcome."),
		}, []string{"resource", "outcome"}),
		DWDRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dwd_request_duration_seconds",
			Help:      help("DWD open-data request duration in seconds."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"resource"}),
		SkippedDocuments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_documents_total",
			Help:      help("Archive entries skipped because they did not parse or match."),
		}, []string{"resource"}),
		ViewsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_published_total",
			Help:      help("Forecast views written to Kafka."),
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      help("Forecast views that failed to publish."),
		}),
	}
}
