package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/biteswipe/internal/auth"
	"github.com/mmynk/biteswipe/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// CallerKey is the context key for storing the authenticated caller.
const CallerKey contextKey = "caller"

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

// CallerFrom extracts the caller from the context.
// Returns the zero Caller if the request was not authenticated.
func CallerFrom(ctx context.Context) models.Caller {
	caller, _ := ctx.Value(CallerKey).(models.Caller)
	return caller
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	return CallerFrom(ctx).UserID
}

// RequireAuth returns a middleware that resolves the bearer token in the
// Authorization header through identities and stores the resulting caller in
// the request context.
func RequireAuth(identities auth.IdentityProvider) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			caller, err := identities.Authenticate(ctx, token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithCaller(ctx, caller), req)
		}
	}
}
