package observability

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
)

const namespace = "ardufsm"

// Metrics holds the controller's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	transitions *prometheus.CounterVec
	trials      *prometheus.CounterVec
	rewards     prometheus.Counter
	rewardTime  prometheus.Counter
	earlyStops  prometheus.Counter
	announce    prometheus.Histogram
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "State changes by source and target state.",
		}, []string{"from", "to"}),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Completed trials by outcome.",
		}, []string{"outcome"}),
		rewards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewards_total",
			Help:      "Reward pulses delivered.",
		}),
		rewardTime: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reward_valve_open_seconds_total",
			Help:      "Time the reward valve was held open by the reward state.",
		}),
		earlyStops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_window_early_stops_total",
			Help:      "Response windows ended because MRT was reached.",
		}),
		announce: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "state_change_announce_seconds",
			Help:      "Delay between the ST_CHG and ST_CHG2 timestamps.",
			Buckets:   []float64{0, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.05},
		}),
	}
	m.registry.MustRegister(m.transitions, m.trials, m.rewards, m.rewardTime, m.earlyStops, m.announce)
	return m
}

// Registry exposes the registry, for callers that add their own collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
			m.announce.Observe((e.AnnouncedAt - e.DecidedAt).Seconds())
		},
		OnTrialEnd: func(_ context.Context, e *domain.TrialEvent) {
			outcome := domain.Outcome(e.Results[resultName(params.Outcome)])
			m.trials.WithLabelValues(outcome.String()).Inc()
			if e.StoppedEarly {
				m.earlyStops.Inc()
			}
		},
		OnReward: func(_ context.Context, e *domain.RewardEvent) {
			m.rewards.Inc()
			m.rewardTime.Add(e.Duration.Seconds())
		},
	}
}

// WriteText writes every metric in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Totals returns the summed value of every counter family, keyed by metric name.
func (m *Metrics) Totals() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	out := make(map[string]float64, len(families))
	for _, mf := range families {
		if mf.GetType() == dto.MetricType_COUNTER {
			out[mf.GetName()] = counterTotal(mf)
		}
	}
	return out, nil
}

func counterTotal(mf *dto.MetricFamily) float64 {
	var total float64
	for _, metric := range mf.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	return total
}

var standardResults = params.StandardResultSpecs()

func resultName(id params.ResultID) string { return standardResults[id].Name }
