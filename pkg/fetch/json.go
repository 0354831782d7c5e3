package fetch

import (
	"encoding/json"
	"fmt"
)

// JSON decodes the fetcher's current body into T.
// Returns the fetch error if the fetcher is in the error state, and a
// decode error if the body is not valid JSON for T.
func JSON[T any](f *Fetcher) (T, error) {
	var out T

	if f.IsError() {
		return out, f.Err()
	}
	if !f.IsReady() {
		return out, fmt.Errorf("fetch: no data loaded yet (state %s)", f.State())
	}

	if err := json.Unmarshal(f.Data(), &out); err != nil {
		return out, fmt.Errorf("fetch: decode json: %w", err)
	}
	return out, nil
}
