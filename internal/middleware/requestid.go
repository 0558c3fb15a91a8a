package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id on both request and response.
	RequestIDHeader = "X-Request-ID"

	// RequestIDContextKey is the context key the id is stored under.
	RequestIDContextKey contextKey = "request_id"
)

// RequestID tags every request with an id for log correlation. An id set by
// an upstream proxy or load balancer is kept; otherwise one is minted. The
// id is echoed on the response and placed in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id from the context, or "" outside the
// middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}
