package metrics

import "github.com/prometheus/client_golang/prometheus"

// AgentMetrics exposes counters/histograms for call handling and
// availability lookups.
type AgentMetrics struct {
	callsTotal     *prometheus.CounterVec
	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
}

func NewAgentMetrics(reg prometheus.Registerer) *AgentMetrics {
	m := &AgentMetrics{
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "calls",
			Name:      "handled_total",
			Help:      "Total inbound calls by classification outcome",
		}, []string{"outcome"}),
		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "scheduling",
			Name:      "lookups_total",
			Help:      "Total availability lookups by result class",
		}, []string{"result"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "scheduling",
			Name:      "lookup_duration_seconds",
			Help:      "Latency of availability webhook requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.callsTotal, m.lookupsTotal, m.lookupDuration)
	return m
}

// ObserveCall records a classified inbound call ("active" or "rejected").
func (m *AgentMetrics) ObserveCall(outcome string) {
	if m == nil {
		return
	}
	m.callsTotal.WithLabelValues(outcome).Inc()
}

// ObserveLookup records one availability lookup and its latency. Result is
// one of "ok", "missing_result", "rejected", "timeout", "unreachable".
func (m *AgentMetrics) ObserveLookup(result string, seconds float64) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(result).Inc()
	m.lookupDuration.WithLabelValues(result).Observe(seconds)
}
