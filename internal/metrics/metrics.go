// Package metrics holds the Prometheus collectors exported by the wallet service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_rpc_requests_total",
		Help: "Total gRPC requests by method and status code",
	}, []string{"method", "code"})

	RPCLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wallet_rpc_request_duration_seconds",
		Help:    "gRPC request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method"})

	ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_validation_rejections_total",
		Help: "Transfer forms rejected by validation, by first failing field and kind",
	}, []string{"field", "kind"})

	SubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_submissions_total",
		Help: "Transfers and boosts accepted by the ledger",
	}, []string{"kind"})
)

// Handler returns the HTTP handler serving the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
