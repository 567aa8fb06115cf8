// Package metrics exposes the prometheus instruments for the admission
// workflows. The /metrics endpoint is served by promhttp in cmd/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WardOperations counts completed assignment-workflow mutations by
	// operation (assign, transfer, discharge) and outcome (ok, error).
	WardOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hospital_ward_operations_total",
		Help: "Completed patient-ward operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// OccupiedBeds tracks the active occupied-bed count per ward.
	OccupiedBeds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hospital_ward_occupied_beds",
		Help: "Currently occupied beds per ward.",
	}, []string{"ward"})
)

// ObserveWardOperation records one workflow outcome.
func ObserveWardOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	WardOperations.WithLabelValues(operation, outcome).Inc()
}
