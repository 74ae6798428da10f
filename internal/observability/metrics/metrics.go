package metrics

import "github.com/prometheus/client_golang/prometheus"

// SubmissionMetrics exposes counters/histograms for the enquiry
// submission pipeline.
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
	submitLatency    prometheus.Histogram
	resolverMisses   prometheus.Counter
	dedupeDegraded   prometheus.Counter
	fanoutFailures   *prometheus.CounterVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meridianfx",
			Subsystem: "enquiries",
			Name:      "submissions_total",
			Help:      "Total enquiry submissions by outcome",
		}, []string{"outcome"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meridianfx",
			Subsystem: "enquiries",
			Name:      "submit_latency_seconds",
			Help:      "Latency of the document-store append",
			Buckets:   prometheus.DefBuckets,
		}),
		resolverMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meridianfx",
			Subsystem: "enquiries",
			Name:      "country_resolver_miss_total",
			Help:      "Submissions whose dial code resolved to the Unknown fallback",
		}),
		dedupeDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meridianfx",
			Subsystem: "enquiries",
			Name:      "dedupe_degraded_total",
			Help:      "Submissions allowed through because the dedupe store was unavailable",
		}),
		fanoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meridianfx",
			Subsystem: "enquiries",
			Name:      "fanout_failures_total",
			Help:      "Post-persist fan-out failures by stage",
		}, []string{"stage"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.submitLatency, m.resolverMisses, m.dedupeDegraded, m.fanoutFailures)
	return m
}

func (m *SubmissionMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *SubmissionMetrics) ObserveSubmitLatency(seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(seconds)
}

func (m *SubmissionMetrics) ObserveResolverMiss() {
	if m == nil {
		return
	}
	m.resolverMisses.Inc()
}

func (m *SubmissionMetrics) ObserveDedupeDegraded() {
	if m == nil {
		return
	}
	m.dedupeDegraded.Inc()
}

func (m *SubmissionMetrics) ObserveFanoutFailure(stage string) {
	if m == nil {
		return
	}
	m.fanoutFailures.WithLabelValues(stage).Inc()
}
