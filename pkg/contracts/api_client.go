package contracts

import (
	"context"
	"net/url"
)

// APIClient is the transport collaborator each league adapter consumes.
// Get returns the raw response body and HTTP status code; the error is
// non-nil only for transport-level failures (connection, timeout,
// context cancellation). Non-2xx statuses are returned to the caller,
// which owns mapping them onto the error taxonomy. Retries and timeouts
// live behind this interface, never in the adapters.
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values) (body []byte, statusCode int, err error)
}
