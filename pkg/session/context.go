package session

import (
	"context"

	"github.com/NeroQue/course-generator-backend/internal/models"
)

type contextKey struct{}

// WithIdentity attaches the resolved request identity to ctx
func WithIdentity(ctx context.Context, identity models.RequestIdentity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext returns the identity set by the auth gate.
// Requests that never went through the gate come back as a guest.
func IdentityFromContext(ctx context.Context) models.RequestIdentity {
	if identity, ok := ctx.Value(contextKey{}).(models.RequestIdentity); ok {
		return identity
	}
	return models.GuestIdentity("")
}
