package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	pageViews     *prometheus.CounterVec
	submissions   *prometheus.CounterVec
	relayDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		pageViews: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "page_views_total",
			Help:      "Rendered pages by locale.",
		}, []string{"locale"}),
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
		relayDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "contact_relay_seconds",
			Help:      "Time spent relaying a submission to the form endpoint.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
