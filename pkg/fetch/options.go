package fetch

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
)

// Default retry budget for NewWithRetry.
const (
	DefaultRetryCount = 2
	DefaultRetryDelay = 250 * time.Millisecond
)

// Option configures a Fetcher at construction.
type Option func(*Fetcher)

// WithClient sets the HTTP client used for requests.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithRetry sets the retry budget: up to count re-attempts after a failed
// request, waiting delay between attempts. Zero count disables retries.
func WithRetry(count int, delay time.Duration) Option {
	return func(f *Fetcher) {
		f.retryCount = count
		f.retryDelay = delay
	}
}

// OnSuccess registers a callback invoked with the body after a successful
// fetch. It runs on the fetch goroutine.
func OnSuccess(fn func([]byte)) Option {
	return func(f *Fetcher) {
		f.onSuccess = fn
	}
}

// OnError registers a callback invoked when a fetch fails after exhausting
// the retry budget. It runs on the fetch goroutine.
func OnError(fn func(error)) Option {
	return func(f *Fetcher) {
		f.onError = fn
	}
}

// WithMetrics attaches Prometheus instrumentation. Several fetchers may
// share one Metrics instance.
func WithMetrics(m *Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// WithTracing enables an OpenTelemetry span around every request attempt,
// using the globally registered tracer provider.
func WithTracing(tracerName string) Option {
	return func(f *Fetcher) {
		if tracerName == "" {
			tracerName = "bindkit"
		}
		f.tracer = otel.Tracer(tracerName)
	}
}
