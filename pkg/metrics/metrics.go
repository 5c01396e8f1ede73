package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "brixium"

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	ledgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_operations_total",
		Help:      "Balance-changing operations by kind and outcome.",
	}, []string{"operation", "outcome"})

	ledgerVolume = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_volume_total",
		Help:      "Sum of amounts moved by successful operations, in the operation currency.",
	}, []string{"operation", "currency"})

	snapshotFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_flushes_total",
		Help:      "Collection mirror writes by collection and outcome.",
	}, []string{"collection", "outcome"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// ObserveLedger counts one ledger operation
func ObserveLedger(operation string, err error) {
	ledgerOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// AddVolume records the amount moved by a successful operation
func AddVolume(operation, currency string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	ledgerVolume.WithLabelValues(operation, currency).Add(amount.InexactFloat64())
}

// ObserveFlush counts one collection write to the snapshot backend
func ObserveFlush(collection string, err error) {
	snapshotFlushes.WithLabelValues(collection, outcome(err)).Inc()
}

// ObserveHTTP records the latency of one request
func ObserveHTTP(method, route, status string, latency time.Duration) {
	httpDuration.WithLabelValues(method, route, status).Observe(latency.Seconds())
}

// Handler exposes the default registry in the text exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}
