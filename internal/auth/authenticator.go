// Package auth resolves request credentials into a caller identity.
package auth

import (
	"context"

	"github.com/mmynk/biteswipe/internal/models"
)

// IdentityProvider defines the interface for turning a bearer credential into
// a Caller. Account registration and login live outside this service; this
// abstraction lets the transport swap JWTs for another scheme (API keys,
// an upstream identity service) without touching the engine.
type IdentityProvider interface {
	// Authenticate verifies credential and returns the identity behind it.
	// Returns ErrInvalidToken if the credential is not acceptable.
	Authenticate(ctx context.Context, credential string) (models.Caller, error)
}
