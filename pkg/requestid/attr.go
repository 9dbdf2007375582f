package requestid

import (
	"context"
	"log/slog"
)

// Key is the log attribute key used for request IDs.
const Key = "request_id"

// Attr returns the request ID in ctx as a log attribute. Without an ID it
// returns the zero Attr, which slog handlers drop.
func Attr(ctx context.Context) slog.Attr {
	if id := FromContext(ctx); id != "" {
		return slog.String(Key, id)
	}
	return slog.Attr{}
}
