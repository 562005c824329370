package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics счётчики, общие для обоих ботов. Метка bot различает процессы.
// Все методы безопасны для nil-получателя, чтобы тесты могли не заводить реестр.
type Metrics struct {
	Updates          *prometheus.CounterVec
	Dropped          prometheus.Counter
	SendErrors       *prometheus.CounterVec
	OrderTransitions *prometheus.CounterVec
	Notifications    *prometheus.CounterVec
	TVRequests       prometheus.Counter
}

func New(reg prometheus.Registerer, bot string) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"bot": bot}
	return &Metrics{
		Updates: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "orderbots_updates_total",
			Help:        "Inbound updates by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Name:        "orderbots_updates_dropped_total",
			Help:        "Updates dropped by the per-user rate limiter.",
			ConstLabels: labels,
		}),
		SendErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "orderbots_send_errors_total",
			Help:        "Failed outbound Telegram calls by method.",
			ConstLabels: labels,
		}, []string{"method"}),
		OrderTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "orderbots_order_transitions_total",
			Help:        "Order status changes by target status.",
			ConstLabels: labels,
		}, []string{"status"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "orderbots_admin_notifications_total",
			Help:        "Admin notifications by delivery result.",
			ConstLabels: labels,
		}, []string{"result"}),
		TVRequests: f.NewCounter(prometheus.CounterOpts{
			Name:        "orderbots_tv_requests_total",
			Help:        "Confirmed TV production requests.",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) Update(kind string) {
	if m == nil {
		return
	}
	m.Updates.WithLabelValues(kind).Inc()
}

func (m *Metrics) Drop() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}

func (m *Metrics) SendError(method string) {
	if m == nil {
		return
	}
	m.SendErrors.WithLabelValues(method).Inc()
}

func (m *Metrics) Transition(status string) {
	if m == nil {
		return
	}
	m.OrderTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) Notified(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Notifications.WithLabelValues(result).Inc()
}

func (m *Metrics) TVRequest() {
	if m == nil {
		return
	}
	m.TVRequests.Inc()
}
