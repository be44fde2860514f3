// Package metrics exposes pacer's prometheus collectors.
package metrics

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple servers never clash
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	useCases        *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	planAlerts      prometheus.Counter
	reminders       *prometheus.CounterVec
	dispatchErrors  prometheus.Counter
	unsafeTasks     *prometheus.GaugeVec
	remainingHours  *prometheus.GaugeVec
	globalAbility   *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		useCases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pacer_use_cases_total",
				Help: "Service use cases executed, by name and outcome",
			},
			[]string{"use_case", "outcome"},
		),
		useCaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pacer_use_case_duration_seconds",
				Help:    "Service use case latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"use_case"},
		),
		planAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacer_plan_revision_alerts_total",
			Help: "Recordings that left a previously safe task under-planned",
		}),
		reminders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pacer_reminders_fired_total",
				Help: "Reminders delivered, by kind",
			},
			[]string{"kind"},
		),
		dispatchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pacer_dispatch_errors_total",
			Help: "Notification deliveries that failed",
		}),
		unsafeTasks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pacer_unsafe_tasks",
				Help: "Incomplete tasks whose open slots do not cover the forecast",
			},
			[]string{"user_id"},
		),
		remainingHours: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pacer_remaining_hours",
				Help: "Forecast hours left across incomplete tasks",
			},
			[]string{"user_id"},
		),
		globalAbility: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pacer_global_ability",
				Help: "Estimated-to-actual hours ratio across all recorded work",
			},
			[]string{"user_id"},
		),
	}
	m.registry.MustRegister(
		m.useCases, m.useCaseDuration, m.planAlerts, m.reminders,
		m.dispatchErrors, m.unsafeTasks, m.remainingHours, m.globalAbility,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	outcome := "success"
	if !e.Success {
		outcome = "error"
	}
	m.useCases.WithLabelValues(e.Name, outcome).Inc()
	m.useCaseDuration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
	if _, ok := e.Fields["alert_additional_slots"]; ok {
		m.planAlerts.Inc()
	}
}

// ReminderFired counts a delivered reminder under its kind.
func (m *Metrics) ReminderFired(n domain.Notification) {
	m.reminders.WithLabelValues(reminderKind(n.Tag)).Inc()
}

func (m *Metrics) DispatchFailed() {
	m.dispatchErrors.Inc()
}

// ObserveSummary publishes a user's current forecast totals.
func (m *Metrics) ObserveSummary(userID string, s forecast.Summary) {
	m.unsafeTasks.WithLabelValues(userID).Set(float64(len(s.UnsafeTaskIDs)))
	m.remainingHours.WithLabelValues(userID).Set(s.TotalRemaining)
	m.globalAbility.WithLabelValues(userID).Set(s.GlobalAbility)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func reminderKind(tag string) string {
	switch {
	case strings.HasPrefix(tag, "deadline-"):
		return "deadline"
	case strings.HasPrefix(tag, "plan-revision-"):
		return "plan-revision"
	case tag == "":
		return "unknown"
	}
	return tag
}
