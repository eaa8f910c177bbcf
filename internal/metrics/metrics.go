// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devfolio_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	contactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_contact_submissions_total",
		Help: "Contact form submissions by outcome",
	}, []string{"outcome"}) // outcome=sent|invalid|failed|rate_limited

	githubFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_github_fetch_total",
		Help: "GitHub repository metadata fetches by outcome",
	}, []string{"outcome"}) // outcome=success|failure|cache_hit

	postsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devfolio_posts_loaded",
		Help: "Number of blog posts in the current content set",
	})

	contentReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_content_reloads_total",
		Help: "Blog content reloads by outcome",
	}, []string{"outcome"})
)

// ObserveRequest records a finished HTTP request.
func ObserveRequest(route, status string, seconds float64) {
	httpRequests.WithLabelValues(route, status).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}

// RecordContact records a contact submission outcome.
func RecordContact(outcome string) {
	contactSubmissions.WithLabelValues(outcome).Inc()
}

// RecordGitHubFetch records a repository metadata lookup outcome.
func RecordGitHubFetch(outcome string) {
	githubFetches.WithLabelValues(outcome).Inc()
}

// SetPostsLoaded sets the loaded post gauge.
func SetPostsLoaded(n int) {
	postsLoaded.Set(float64(n))
}

// RecordContentReload records a blog reload outcome.
func RecordContentReload(ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	contentReloads.WithLabelValues(outcome).Inc()
}
