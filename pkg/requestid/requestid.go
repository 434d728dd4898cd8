package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	Header                  = "X-Request-Id"
	RequestIDKey contextKey = "request_id"
)

// Generate creates a new unique request ID
func Generate() string {
	return uuid.New().String()
}

func ToContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// FromContext returns the request ID carried by ctx or an empty string.
// Background pipelines keep the ID of the request that created their job.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func FromRequest(r *http.Request) string {
	return FromContext(r.Context())
}
