package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the serving-path Prometheus collectors
type Metrics struct {
	RateRequestsTotal       prometheus.Counter
	HourlyRequestsTotal     prometheus.Counter
	ConversionRequestsTotal prometheus.Counter

	RequestErrorsTotal *prometheus.CounterVec
}

// NewMetrics registers the server collectors with the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RateRequestsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "rate_requests_total",
				Help: "Total number of daily rate requests",
			},
		),

		HourlyRequestsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "hourly_requests_total",
				Help: "Total number of hourly rate requests",
			},
		),

		ConversionRequestsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of currency conversion requests",
			},
		),

		RequestErrorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "request_errors_total",
				Help: "Total number of failed requests by error kind",
			},
			[]string{"kind"},
		),
	}
}
