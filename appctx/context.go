package appctx

import (
	"context"
)

// Context key for storing request-scoped values
type contextKey string

const RequestIDContextKey contextKey = "request_id"

// SetRequestID adds the request id to the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID extracts the request id from the context
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDContextKey).(string)
	return requestID, ok
}

// RequestIDOrUnknown is a logging helper for code paths that may run outside a request
func RequestIDOrUnknown(ctx context.Context) string {
	if requestID, ok := GetRequestID(ctx); ok {
		return requestID
	}
	return "unknown"
}
