package davclient

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	operations *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caldav",
		Subsystem: "client",
		Name:      "operations_total",
		Help:      "CalDAV operations by method and outcome.",
	}, []string{"method", "outcome"})

	if err := reg.Register(operations); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		operations = existing
	}
	return &metrics{operations: operations}, nil
}

func (m *metrics) observe(op Operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op.Method(), outcome).Inc()
}
