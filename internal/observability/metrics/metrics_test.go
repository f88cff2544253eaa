package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestObserveCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAgentMetrics(reg)

	m.ObserveCall("rejected")
	m.ObserveCall("active")
	m.ObserveCall("active")

	if v := counterValue(t, reg, "frontdesk_calls_handled_total", map[string]string{"outcome": "active"}); v != 2 {
		t.Errorf("active calls = %v, want 2", v)
	}
	if v := counterValue(t, reg, "frontdesk_calls_handled_total", map[string]string{"outcome": "rejected"}); v != 1 {
		t.Errorf("rejected calls = %v, want 1", v)
	}
}

func TestObserveLookup(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAgentMetrics(reg)

	m.ObserveLookup("ok", 0.25)
	m.ObserveLookup("timeout", 10.0)

	if v := counterValue(t, reg, "frontdesk_scheduling_lookups_total", map[string]string{"result": "ok"}); v != 1 {
		t.Errorf("ok lookups = %v, want 1", v)
	}
	if v := counterValue(t, reg, "frontdesk_scheduling_lookups_total", map[string]string{"result": "timeout"}); v != 1 {
		t.Errorf("timeout lookups = %v, want 1", v)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *AgentMetrics
	m.ObserveCall("active")
	m.ObserveLookup("ok", 0.1)
}
