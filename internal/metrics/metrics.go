// Package metrics exposes Prometheus instrumentation for the backend
// layer. Collectors register on the default registry; consumers decide
// whether to serve them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteRequests counts Supabase HTTP requests by endpoint and
	// response status.
	RemoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adkari_remote_requests_total",
		Help: "Supabase requests by endpoint and status.",
	}, []string{"endpoint", "status"})

	// LocalDegradedReads counts local slot reads that fell back to the
	// caller's default because the slot was unreadable or corrupted.
	LocalDegradedReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adkari_local_degraded_reads_total",
		Help: "Local storage reads that degraded to a default value.",
	})

	// LocalFailedWrites counts local writes that were dropped.
	LocalFailedWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adkari_local_failed_writes_total",
		Help: "Local storage writes that were lost.",
	})
)
