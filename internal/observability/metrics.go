package observability

import (
	"time"

	"github.com/jonathan/majel/internal/crew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "majel_recommendations_total",
		Help: "Total recommendation calls by intent and outcome",
	}, []string{"intent", "outcome"})

	recommendationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "majel_recommendation_duration_seconds",
		Help:    "Duration of recommendation calls",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	captainFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "majel_captain_fallbacks_total",
		Help: "Total recommendation calls that found no viable captain",
	}, []string{"intent"})

	triosEvaluated = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "majel_trios_evaluated",
		Help:    "Number of trios scored per recommendation call",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// ObserveRun records one recommendation call. run may be nil when err is set.
func ObserveRun(intent string, run *crew.Run, elapsed time.Duration, err error) {
	recommendationDuration.Observe(elapsed.Seconds())

	switch {
	case err != nil || run == nil:
		recommendationsTotal.WithLabelValues(intent, OutcomeError).Inc()
		return
	case len(run.Results) == 0:
		recommendationsTotal.WithLabelValues(intent, OutcomeEmpty).Inc()
	default:
		recommendationsTotal.WithLabelValues(intent, OutcomeOK).Inc()
	}

	if run.Fallback {
		captainFallbacksTotal.WithLabelValues(intent).Inc()
	}
	triosEvaluated.Observe(float64(run.Evaluated))
}
