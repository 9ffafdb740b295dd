package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Biometrics
	FaceVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "face_verifications_total",
			Help: "Face verifications by result",
		},
		[]string{"result"}, // accepted|rejected|error
	)

	// Transfers
	TransactionsInitiated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_initiated_total",
			Help: "Transfers created in pending state",
		},
	)
	TransactionsSettled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_settled_total",
			Help: "Transfers verified and settled",
		},
	)
	OTPFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_failures_total",
			Help: "Rejected OTP submissions",
		},
		[]string{"reason"}, // mismatch|locked
	)

	// Outbound messages
	PublishFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publish_failures_total",
			Help: "Best-effort Kafka publishes that failed",
		},
		[]string{"topic"},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestsTotal,
		RequestLatency,
		FaceVerifications,
		TransactionsInitiated,
		TransactionsSettled,
		OTPFailures,
		PublishFailures,
	)
}
