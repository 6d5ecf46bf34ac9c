// Package metrics exposes catalog and overlay counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
)

const namespace = "starrysky"

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	RecordsLoaded  prometheus.Counter
	RecordsSkipped prometheus.Counter
	Reloads        prometheus.Counter
	Stars          prometheus.Gauge
	Toggles        *prometheus.CounterVec
	MissingEntries prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_records_loaded_total",
			Help:      "Star records decoded successfully.",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_records_skipped_total",
			Help:      "Star records skipped as malformed.",
		}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog index replacements after the initial load.",
		}),
		Stars: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_stars",
			Help:      "Stars in the current index.",
		}),
		Toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_toggles_total",
			Help:      "Constellation overlay toggles by resulting state.",
		}, []string{"state"}),
		MissingEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_missing_entries_total",
			Help:      "Constellation vertices or edges that referenced absent stars.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.RecordsLoaded, m.RecordsSkipped, m.Reloads, m.Stars, m.Toggles, m.MissingEntries,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveLoad records a catalog load. reload is false for the first load.
func (m *Metrics) ObserveLoad(res *catalog.Result, reload bool) {
	if m == nil || res == nil {
		return
	}
	m.RecordsLoaded.Add(float64(len(res.Stars)))
	m.RecordsSkipped.Add(float64(res.Skipped))
	m.Stars.Set(float64(len(res.Stars)))
	if reload {
		m.Reloads.Inc()
	}
}

// ObserveToggle records one toggle outcome.
func (m *Metrics) ObserveToggle(res constellation.ToggleResult) {
	if m == nil {
		return
	}
	state := "hidden"
	if res.Visible {
		state = "visible"
	}
	m.Toggles.WithLabelValues(state).Inc()
	m.MissingEntries.Add(float64(len(res.Missing)))
}
