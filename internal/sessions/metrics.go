package sessions

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus collectors a Manager updates.
type Metrics struct {
	Active  prometheus.Gauge
	Started *prometheus.CounterVec
	Won     *prometheus.CounterVec
	Actions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solitaire",
			Name:      "active_sessions",
			Help:      "Number of open game sessions.",
		}),
		Started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solitaire",
			Name:      "games_started_total",
			Help:      "Games dealt, by variant.",
		}, []string{"variant"}),
		Won: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solitaire",
			Name:      "games_won_total",
			Help:      "Games won, by variant.",
		}, []string{"variant"}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solitaire",
			Name:      "actions_total",
			Help:      "Player actions, by variant and outcome.",
		}, []string{"variant", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Active, m.Started, m.Won, m.Actions)
	}
	return m
}
