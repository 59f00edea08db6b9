// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ToolCallsTotal counts tool invocations by outcome.
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_insights_tool_calls_total",
			Help: "Total number of tool invocations.",
		},
		[]string{"tool", "outcome"},
	)

	// ToolCallDuration observes how long a tool took to build its report.
	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "github_insights_tool_call_duration_seconds",
			Help:    "Duration of tool invocations in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"tool"},
	)

	// GitHubRequestsTotal counts outbound GitHub API requests by status code.
	GitHubRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_insights_github_requests_total",
			Help: "Total number of requests sent to the GitHub API.",
		},
		[]string{"code", "method"},
	)

	// GitHubRequestDuration observes GitHub API round trips.
	GitHubRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "github_insights_github_request_duration_seconds",
			Help:    "Duration of requests sent to the GitHub API in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// ObserveToolCall records one finished tool invocation.
// outcome is "success" or a failure kind such as "upstream".
func ObserveToolCall(tool, outcome string, took time.Duration) {
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(took.Seconds())
}

// RejectToolCall counts a call refused before any report was built.
func RejectToolCall(tool string) {
	ToolCallsTotal.WithLabelValues(tool, "invalid_arguments").Inc()
}

// InstrumentGitHub wraps next so every completed GitHub API round trip is counted and timed.
func InstrumentGitHub(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(GitHubRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(GitHubRequestDuration, next))
}
