// Package utils holds small framework-independent helpers shared across the
// engine's internal packages.
package utils

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"go.uber.org/zap"
)

type contextKey string

// RequestIDKey is the context key under which a per-request correlation ID is stored.
const RequestIDKey contextKey = "requestID"

// Logger is the package-level fallback logger used only when a caller has not
// wired one in. Components should prefer an injected *zap.Logger.
var Logger *zap.Logger

// GetRequestID retrieves the request ID from ctx, returning "" if absent.
func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		if Logger != nil {
			Logger.Debug("requestID not found in context")
		}
		return ""
	}
	return requestID
}

// WithRequestID returns a derived context carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GenerateURLSafeToken generates a URL-safe, base64 encoded, cryptographically
// secure random string.
func GenerateURLSafeToken() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("generating random token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
