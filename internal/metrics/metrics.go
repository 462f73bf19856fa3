// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DefaultsGenerated counts short uuid defaults handed out, per field.
	DefaultsGenerated = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "shortuuid_defaults_generated_total",
			Help: "Number of generated short uuid default values, differentiated by field.",
		},
		[]string{"field"},
	)

	// DescriptorErrors counts model fields whose short uuid tag could not be turned into a descriptor.
	DescriptorErrors = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "shortuuid_descriptor_errors_total",
			Help: "Number of rejected short uuid field declarations, differentiated by field.",
		},
		[]string{"field"},
	)
)
