package api

import (
	"context"
	"time"
)

// QueryTimeout bounds database work that runs outside a request, such as
// index creation at startup.
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with the default query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
