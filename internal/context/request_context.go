package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RequestContextKey represents keys used in request context
type RequestContextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey RequestContextKey = "request_id"
	// StartTimeKey is the context key for request start time
	StartTimeKey RequestContextKey = "start_time"
	// UserAgentKey is the context key for user agent
	UserAgentKey RequestContextKey = "user_agent"
	// RemoteAddrKey is the context key for remote address
	RemoteAddrKey RequestContextKey = "remote_addr"
)

// maxRequestIDLength bounds ids accepted from upstream X-Request-ID headers
const maxRequestIDLength = 128

// RequestInfo holds information about the current request
type RequestInfo struct {
	ID         string    `json:"request_id"`
	StartTime  time.Time `json:"start_time"`
	UserAgent  string    `json:"user_agent,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetStartTime retrieves the start time from context
func GetStartTime(ctx context.Context) time.Time {
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}

// GetUserAgent retrieves the user agent from context
func GetUserAgent(ctx context.Context) string {
	if userAgent, ok := ctx.Value(UserAgentKey).(string); ok {
		return userAgent
	}
	return ""
}

// GetRemoteAddr retrieves the remote address from context
func GetRemoteAddr(ctx context.Context) string {
	if remoteAddr, ok := ctx.Value(RemoteAddrKey).(string); ok {
		return remoteAddr
	}
	return ""
}

// ResolveRequestID keeps a usable upstream id and otherwise generates one
func ResolveRequestID(upstream string) string {
	if upstream != "" && len(upstream) <= maxRequestIDLength {
		return upstream
	}
	return uuid.NewString()
}

// NewRequestContext stores the request id and client metadata on ctx
func NewRequestContext(ctx context.Context, requestID, userAgent, remoteAddr string) context.Context {
	ctx = WithRequestID(ctx, requestID)
	ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	ctx = context.WithValue(ctx, UserAgentKey, userAgent)
	ctx = context.WithValue(ctx, RemoteAddrKey, remoteAddr)
	return ctx
}

// GetRequestInfo extracts all request information from context
func GetRequestInfo(ctx context.Context) RequestInfo {
	return RequestInfo{
		ID:         GetRequestID(ctx),
		StartTime:  GetStartTime(ctx),
		UserAgent:  GetUserAgent(ctx),
		RemoteAddr: GetRemoteAddr(ctx),
	}
}
