package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "matchday_transitions_total",
	Help: "The number of successful match day transitions",
}, []string{"transition"})

var RejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "matchday_rejections_total",
	Help: "The number of rejected requests by error code",
}, []string{"code"})

var EventPublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "matchday_event_publish_errors_total",
	Help: "The number of lifecycle events that could not be published",
}, []string{"type"})

var EventPublishDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "matchday_event_publish_duration_seconds",
	Help: "Duration of publishing a lifecycle event",
	Buckets: []float64{
		0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2,
	},
})
