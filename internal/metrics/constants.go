package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameScoresAccepted     = "scores_accepted_total"
	MetricNameScoresRejected     = "scores_rejected_total"
	MetricNameExpAwarded         = "exp_awarded_total"
	MetricNameTokensAwarded      = "tokens_awarded_total"
	MetricNameUpgradesPurchased  = "upgrades_purchased_total"
	MetricNameTokensSpent        = "tokens_spent_total"
	MetricNameOsuAPIRequests     = "osu_api_requests_total"
	MetricNameOsuAPITokenRenewal = "osu_api_token_renewals_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextScoresAccepted     = "Total number of scores accepted into the ledger"
	HelpTextScoresRejected     = "Total number of scores rejected, by reason"
	HelpTextExpAwarded         = "Total exp awarded, by track"
	HelpTextTokensAwarded      = "Total taiko tokens awarded from scores"
	HelpTextUpgradesPurchased  = "Total number of upgrade purchases, by upgrade"
	HelpTextTokensSpent        = "Total taiko tokens spent on upgrades"
	HelpTextOsuAPIRequests     = "Total osu! API requests, by endpoint and status"
	HelpTextOsuAPITokenRenewal = "Total osu! API client-credential token renewals"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelReason   = "reason"
	LabelTrack    = "track"
	LabelUpgrade  = "upgrade"
	LabelEndpoint = "endpoint"
)

// Rejection reason label values
const (
	RejectReasonDuplicate     = "duplicate"
	RejectReasonConvert       = "convert"
	RejectReasonDisallowedMod = "disallowed_mod"
	RejectReasonCustomRate    = "custom_rate"
	RejectReasonAFK           = "afk"
	RejectReasonMalformed     = "malformed"
	RejectReasonOther         = "other"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
