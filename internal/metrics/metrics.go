package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PagesFetched    *prometheus.CounterVec
	APIErrors       prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
	PlacesCollected *prometheus.CounterVec
	ActiveWorkers   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		PagesFetched: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "places_pages_fetched_total",
			Help: "Total number of result pages fetched from the upstream API.",
		}, []string{"endpoint"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "places_api_errors_total",
			Help: "Total number of errors received from the upstream API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "places_request_duration_seconds",
			Help:    "Duration of requests to the upstream API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		PlacesCollected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "places_collected_total",
			Help: "Total number of candidate places kept by the collectors.",
		}, []string{"strategy"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "enrichment_active_workers",
			Help: "Current number of active workers fetching place details.",
		}),
	}
}
