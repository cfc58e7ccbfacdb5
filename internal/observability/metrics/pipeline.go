package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineObserver feeds orchestrator internals into the shared registry:
// mean score per tried candidate and wins decided by the fallback candidate
// rather than the top-ranked one.
type PipelineObserver struct {
	service      string
	meanScore    *prometheus.HistogramVec
	fallbackWins *prometheus.CounterVec
}

func (o *PipelineObserver) ObserveCandidateAttempt(meanScore float64) {
	o.meanScore.WithLabelValues(o.service).Observe(meanScore)
}

func (o *PipelineObserver) ObserveFallbackWin() {
	o.fallbackWins.WithLabelValues(o.service).Inc()
}
