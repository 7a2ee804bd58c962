package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bac-sim/bac-sim/sim/planner"
	"github.com/bac-sim/bac-sim/sim/session"
)

const metricsNamespace = "bacsim"

// snapshotMetrics holds the gauges exported for one computation.
type snapshotMetrics struct {
	registry *prometheus.Registry

	bacCurrent     prometheus.Gauge
	bacPeak        prometheus.Gauge
	hoursSober     prometheus.Gauge
	stopBy         *prometheus.GaugeVec
	hangoverRisk   *prometheus.GaugeVec
	gramsPerHour   prometheus.Gauge
	drinksLogged   prometheus.Gauge
	caloriesLogged prometheus.Gauge
}

func newSnapshotMetrics() *snapshotMetrics {
	m := &snapshotMetrics{
		registry: prometheus.NewRegistry(),
		bacCurrent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "bac_current_percent",
			Help:      "Blood alcohol concentration now, in percent.",
		}),
		bacPeak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "bac_peak_percent",
			Help:      "Peak blood alcohol concentration over the session, in percent.",
		}),
		hoursSober: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "hours_until_sober",
			Help:      "Hours from now until BAC falls to the sober threshold.",
		}),
		stopBy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stop_by_hours_from_now",
			Help:      "Recommended last-drink time relative to now, by method.",
		}, []string{"method"}),
		hangoverRisk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "hangover_risk",
			Help:      "1 for the current hangover risk band, 0 for the others.",
		}, []string{"band"}),
		gramsPerHour: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "pace_grams_per_hour",
			Help:      "Recent drinking pace in grams of ethanol per hour.",
		}),
		drinksLogged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "drinks_logged",
			Help:      "Number of drink events in the session.",
		}),
		caloriesLogged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "calories_logged",
			Help:      "Calories of the logged drinks.",
		}),
	}
	m.registry.MustRegister(
		m.bacCurrent, m.bacPeak, m.hoursSober, m.stopBy,
		m.hangoverRisk, m.gramsPerHour, m.drinksLogged, m.caloriesLogged,
	)
	return m
}

// observe sets every gauge from s and plan.
func (m *snapshotMetrics) observe(s *session.Session, plan planner.Plan) {
	m.bacCurrent.Set(s.BACNow())
	m.bacPeak.Set(plan.PeakBAC)
	m.hoursSober.Set(s.HoursUntilSoberFromNow())
	m.stopBy.WithLabelValues("fixed").Set(plan.StopByFixed)
	m.stopBy.WithLabelValues("pace_aware").Set(plan.StopByPaceAware)
	for _, band := range []planner.RiskBand{planner.RiskLow, planner.RiskMedium, planner.RiskHigh} {
		v := 0.0
		if band == plan.HangoverRisk {
			v = 1
		}
		m.hangoverRisk.WithLabelValues(string(band)).Set(v)
	}
	m.gramsPerHour.Set(plan.Pace.GramsPerHour)
	m.drinksLogged.Set(float64(s.Len()))
	m.caloriesLogged.Set(float64(s.Nutrition().Calories))
}

// writeTextfile writes the gauges in the node-exporter textfile format.
func (m *snapshotMetrics) writeTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// exportMetrics observes s and plan into a fresh registry and writes it to path.
func exportMetrics(path string, s *session.Session, plan planner.Plan) error {
	m := newSnapshotMetrics()
	m.observe(s, plan)
	return m.writeTextfile(path)
}
