package modeserver

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	generated  *prometheus.CounterVec
	duplicates prometheus.Counter
}

func newMetrics(registry *prometheus.Registry, catalog Catalog) *metrics {
	m := &metrics{
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modeline_generated_total",
				Help: "Number of modes generated, by timing algorithm.",
			},
			[]string{"algorithm"},
		),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "modeline_catalog_duplicates_total",
			Help: "Number of submitted modes that were already in the catalog.",
		}),
	}

	entries := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "modeline_catalog_entries",
			Help: "Number of modes in the catalog.",
		},
		func() float64 { return float64(catalog.Len()) },
	)

	registry.MustRegister(m.generated, m.duplicates, entries)

	return m
}
