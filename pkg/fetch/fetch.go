package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bindkit-dev/bindkit/pkg/reactive"
)

// State represents the current state of a fetcher.
type State int

const (
	Pending State = iota // Before the first request starts
	Loading              // Request in progress
	Ready                // Response body successfully loaded
	Error                // Request failed after exhausting the retry budget
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// StatusError is the error surfaced when the server answers with a non-2xx
// status. The response body is discarded.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: unexpected status %s for %s", e.Status, e.URL)
}

// Fetcher loads the body of a URL and exposes the request lifecycle as
// reactive state. Construction starts the first request; SetURL re-fetches
// whenever the URL changes.
//
// Requests run on their own goroutine. When a new request starts while an
// older one is still in flight, the older one is cancelled and its result
// is discarded (last write wins, decided by a per-fetch sequence number).
type Fetcher struct {
	client *http.Client
	url    *reactive.Signal[string]
	state  *reactive.Signal[State]
	data   *reactive.Signal[[]byte]
	err    *reactive.Signal[error]
	status *reactive.Signal[int]

	retryCount int
	retryDelay time.Duration
	onSuccess  func([]byte)
	onError    func(error)

	metrics *Metrics
	tracer  trace.Tracer

	// fetchID orders fetches so stale results can be discarded.
	fetchID uint64
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// New creates a fetcher for the given URL and starts the first request.
func New(url string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    reactive.NewSignal(url),
		state:  reactive.NewSignal(Pending),
		data:   reactive.NewSignal[[]byte](nil),
		err:    reactive.NewSignal[error](nil),
		status: reactive.NewSignal(0),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.Refetch()
	return f
}

// NewWithRetry creates a fetcher that re-attempts failed requests with the
// default retry budget before surfacing an error.
func NewWithRetry(url string, opts ...Option) *Fetcher {
	opts = append([]Option{WithRetry(DefaultRetryCount, DefaultRetryDelay)}, opts...)
	return New(url, opts...)
}

// URL returns the current URL.
func (f *Fetcher) URL() string {
	return f.url.Get()
}

// SetURL changes the URL and re-fetches. Setting the same URL is a no-op;
// an in-flight request for the old URL is cancelled.
func (f *Fetcher) SetURL(url string) {
	if f.url.Peek() == url {
		return
	}
	f.url.Set(url)
	f.Refetch()
}

// State returns the current lifecycle state.
func (f *Fetcher) State() State {
	return f.state.Get()
}

// IsLoading reports whether a request is in progress or not yet started.
func (f *Fetcher) IsLoading() bool {
	s := f.state.Get()
	return s == Loading || s == Pending
}

// IsReady reports whether the last request completed successfully.
func (f *Fetcher) IsReady() bool {
	return f.state.Get() == Ready
}

// IsError reports whether the last request failed.
func (f *Fetcher) IsError() bool {
	return f.state.Get() == Error
}

// Data returns the last successfully fetched body.
func (f *Fetcher) Data() []byte {
	return f.data.Get()
}

// DataOr returns the fetched body, or fallback while no data is ready.
func (f *Fetcher) DataOr(fallback []byte) []byte {
	if f.IsReady() {
		return f.data.Get()
	}
	return fallback
}

// Err returns the error from the last failed request, or nil.
func (f *Fetcher) Err() error {
	return f.err.Get()
}

// StatusCode returns the HTTP status code of the last completed request,
// or 0 before any response arrived.
func (f *Fetcher) StatusCode() int {
	return f.status.Get()
}

// Refetch forces a reload of the current URL.
// A previously in-flight request is cancelled and its result discarded.
func (f *Fetcher) Refetch() {
	f.mu.Lock()
	f.fetchID++
	currentID := f.fetchID
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.mu.Unlock()

	url := f.url.Peek()

	reactive.Batch(func() {
		f.state.Set(Loading)
		f.err.Set(nil)
	})

	go f.fetch(ctx, currentID, url)
}

// Stop cancels any in-flight request. The fetcher stays usable; the next
// SetURL or Refetch starts a new request.
func (f *Fetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// fetch runs the request loop with the configured retry budget and applies
// the result unless a newer fetch has started in the meantime.
func (f *Fetcher) fetch(ctx context.Context, id uint64, url string) {
	var (
		body       []byte
		statusCode int
		err        error
	)

	maxAttempts := 1 + f.retryCount
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if f.metrics != nil {
				f.metrics.retriesTotal.Inc()
			}
			select {
			case <-time.After(f.retryDelay):
			case <-ctx.Done():
				return
			}
		}

		if f.isStale(id) {
			return
		}

		body, statusCode, err = f.request(ctx, url, attempt)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return
		}
	}

	if f.isStale(id) {
		return
	}

	if err != nil {
		reactive.Batch(func() {
			f.status.Set(statusCode)
			f.err.Set(err)
			f.state.Set(Error)
		})
		if f.onError != nil {
			f.onError(err)
		}
		return
	}

	reactive.Batch(func() {
		f.status.Set(statusCode)
		f.data.Set(body)
		f.state.Set(Ready)
	})
	if f.onSuccess != nil {
		f.onSuccess(body)
	}
}

// request performs a single HTTP GET attempt.
func (f *Fetcher) request(ctx context.Context, url string, attempt int) (body []byte, statusCode int, err error) {
	if f.tracer != nil {
		var span trace.Span
		ctx, span = f.tracer.Start(ctx, "fetch.request",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("url.full", url),
				attribute.Int("retry.attempt", attempt),
			),
		)
		defer func() {
			if statusCode > 0 {
				span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.End()
		}()
	}

	start := time.Now()
	defer func() {
		if f.metrics != nil {
			f.metrics.observe(time.Since(start), err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	statusCode = resp.StatusCode
	if statusCode < 200 || statusCode > 299 {
		return nil, statusCode, &StatusError{
			Code:   statusCode,
			Status: resp.Status,
			URL:    url,
		}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, statusCode, fmt.Errorf("fetch: read body: %w", err)
	}
	return body, statusCode, nil
}

// isStale reports whether a newer fetch has started since id.
func (f *Fetcher) isStale(id uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchID != id
}
