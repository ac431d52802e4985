package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// mutationsTotal counts state-changing operations by operation and result
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "habits_mutations_total",
		Help: "Total habit and log mutations by operation and result",
	}, []string{"operation", "result"})

	// completedWritesTotal counts writes, not days: re-logging a completed day counts again
	completedWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "habits_completed_log_writes_total",
		Help: "Total completed log writes, including repeated writes for the same day",
	})
)

func observeMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	mutationsTotal.WithLabelValues(operation, result).Inc()
}
