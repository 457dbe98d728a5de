package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/batepapo/group-chat-api/chat"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireIdentity extracts the caller identity from the User header and makes
// it available through Identity. The header is a bare, caller-supplied claim
// with no authentication behind it; that is the contract this API inherits
// and it is a known security gap. The value is sanitized like every other
// inbound string before anything downstream sees it.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		name := chat.Sanitize(r.Header.Get("User"))
		if name == "" {
			zap.S().Warnw("request missing User header", "url", r.URL)
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"response": "User header is required"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), name)))
	})
}

// WithIdentity stores the acting participant name on the context
func WithIdentity(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, identityKey, name)
}

// Identity returns the acting participant name stored by RequireIdentity
func Identity(ctx context.Context) string {
	name, _ := ctx.Value(identityKey).(string)
	return name
}

// RequestLogger logs every request with a correlation id, method, path,
// status and duration
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		zap.S().Infow("request complete",
			"requestId", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
