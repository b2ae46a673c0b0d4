package driven

import "context"

// RegistryAPI is the remote registration API.
// Paths are relative to the configured base URL.
type RegistryAPI interface {
	// Get performs one GET and returns the decoded JSON body.
	// A non-success status is an error carrying the path, status and
	// a truncated body snippet. No retry is attempted.
	Get(ctx context.Context, path string) (any, error)

	// Post sends body as JSON in one POST.
	// On success the response is decoded as an object when possible and
	// falls back to an empty map otherwise.
	Post(ctx context.Context, path string, body any) (map[string]any, error)
}
