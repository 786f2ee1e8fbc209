package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcorp_http_requests_total",
		Help: "Handled HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by path
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jcorp_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// PaymentVerificationsTotal counts verification attempts by outcome
	// (confirmed, processing, pending, invalid, not_found, ledger_error)
	PaymentVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcorp_payment_verifications_total",
		Help: "Payment verification attempts by outcome",
	}, []string{"outcome"})

	// DownloadTokensIssuedTotal counts downloads tokens minted by source
	DownloadTokensIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jcorp_download_tokens_issued_total",
		Help: "Download tokens issued",
	}, []string{"source"})
)
