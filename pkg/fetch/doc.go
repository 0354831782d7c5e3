// Package fetch provides a reactive HTTP data fetcher.
//
// A Fetcher loads the body of a URL and exposes the request lifecycle
// (Pending, Loading, Ready, Error) through signals, so views observing it
// via pkg/reactive refresh as the request progresses. Changing the URL with
// SetURL re-fetches; a stale in-flight request is cancelled and its result
// discarded, so the state always reflects the newest URL.
//
//	f := fetch.New("https://api.example.com/users")
//	eff := reactive.NewEffect(func() reactive.Cleanup {
//	    switch {
//	    case f.IsLoading():
//	        renderSpinner()
//	    case f.IsError():
//	        renderError(f.Err())
//	    default:
//	        renderUsers(f.Data())
//	    }
//	    return nil
//	})
//	defer eff.Dispose()
//
// Any non-2xx response is an error (*StatusError). NewWithRetry re-attempts
// failed requests up to a fixed budget (default 2) before surfacing the
// error; there is no backoff policy beyond the fixed delay between attempts.
//
// Prometheus counters/histograms (WithMetrics) and OpenTelemetry spans
// (WithTracing) can be attached per fetcher; both are off by default.
package fetch
