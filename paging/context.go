package paging

import "context"

// runKey is the unexported context key for the enumeration run id.
type runKey struct{}

// WithRunID returns a new context carrying the enumeration run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runKey{}, runID)
}

// RunIDFromContext retrieves the run id set by Results.All.
// Returns ("", false) outside an enumeration, e.g. for Count and Any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runKey{}).(string)
	return id, ok && id != ""
}
