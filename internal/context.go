package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

// Identity is the snapshot an authenticated session carries. It is taken
// when the session is established and is never refreshed from the ledger.
type Identity struct {
	SessionID  string `json:"session_id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	identity, ok := ctx.Value(ContextIdentityKey).(*Identity)
	return identity, ok && identity != nil
}

func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, identity)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
