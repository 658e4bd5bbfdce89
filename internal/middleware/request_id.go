package middleware

import (
	"net/http"

	reqcontext "github.com/prajwalbharadwajbm/influencerconnect/internal/context"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware adds request IDs to incoming requests
type RequestIDMiddleware struct{}

// NewRequestIDMiddleware creates a new request ID middleware
func NewRequestIDMiddleware() *RequestIDMiddleware {
	return &RequestIDMiddleware{}
}

// Middleware returns the HTTP middleware function for request IDs.
// An upstream X-Request-ID is reused; otherwise a new one is generated.
func (m *RequestIDMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := reqcontext.ResolveRequestID(r.Header.Get(RequestIDHeader))
		ctx := reqcontext.NewRequestContext(r.Context(), requestID, r.UserAgent(), r.RemoteAddr)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
