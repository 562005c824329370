package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "shop")

	m.Update("command")
	m.Update("command")
	m.Update("callback")
	m.Drop()
	m.SendError("sendMessage")
	m.Transition("paid")
	m.Notified(true)
	m.Notified(false)
	m.Notified(false)

	if got := testutil.ToFloat64(m.Updates.WithLabelValues("command")); got != 2 {
		t.Fatalf("updates{command} = %v", got)
	}
	if got := testutil.ToFloat64(m.Dropped); got != 1 {
		t.Fatalf("dropped = %v", got)
	}
	if got := testutil.ToFloat64(m.Notifications.WithLabelValues("failed")); got != 2 {
		t.Fatalf("notifications{failed} = %v", got)
	}
	if got := testutil.ToFloat64(m.OrderTransitions.WithLabelValues("paid")); got != 1 {
		t.Fatalf("transitions{paid} = %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Update("text")
	m.Drop()
	m.SendError("x")
	m.Transition("paid")
	m.Notified(true)
	m.TVRequest()
}
