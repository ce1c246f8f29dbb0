package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Submission Metrics
var (
	ScoresAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameScoresAccepted,
			Help: HelpTextScoresAccepted,
		},
	)

	ScoresRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScoresRejected,
			Help: HelpTextScoresRejected,
		},
		[]string{LabelReason},
	)

	ExpAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExpAwarded,
			Help: HelpTextExpAwarded,
		},
		[]string{LabelTrack},
	)

	TokensAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensAwarded,
			Help: HelpTextTokensAwarded,
		},
	)
)

// Shop Metrics
var (
	UpgradesPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpgradesPurchased,
			Help: HelpTextUpgradesPurchased,
		},
		[]string{LabelUpgrade},
	)

	TokensSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensSpent,
			Help: HelpTextTokensSpent,
		},
	)
)

// osu! API Metrics
var (
	OsuAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOsuAPIRequests,
			Help: HelpTextOsuAPIRequests,
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	OsuAPITokenRenewals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOsuAPITokenRenewal,
			Help: HelpTextOsuAPITokenRenewal,
		},
	)
)
