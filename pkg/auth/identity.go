package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated nutritionist behind a request
type Identity struct {
	NutritionistID uuid.UUID
	Email          string
	TokenID        string
	ExpiresAt      time.Time
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, if any
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.NutritionistID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}
