// Package feed holds the narrow transport contract of the rate feed: a
// fetcher that retrieves one document by URL, and the tagged retrieval keys
// that render those URLs.
package feed

import (
	"context"
	"errors"
	"fmt"
)

// DefaultBaseURL is the published root of the rate feed
const DefaultBaseURL = "https://www.tcmb.gov.tr/kurlar"

// ErrNotFound marks a document that is not published (yet, or at all) at
// the requested path. It is expected steady-state behavior, not a failure.
var ErrNotFound = errors.New("document not found")

// StatusError reports a non-success HTTP status other than not-found
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code received: %d", e.Code)
}

// Fetcher retrieves a single feed document by URL
type Fetcher interface {
	// Fetch returns the raw document at the given URL, honoring the
	// context's cancellation
	Fetch(ctx context.Context, url string) ([]byte, error)
}
