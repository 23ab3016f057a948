package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/biteswipe/internal/auth"
	"github.com/mmynk/biteswipe/internal/engine"
	"github.com/mmynk/biteswipe/internal/middleware"
	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

// toConnectError maps domain errors to Connect status codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, engine.ErrForbidden):
		return connect.CodePermissionDenied
	case errors.Is(err, engine.ErrNotMember):
		return connect.CodeFailedPrecondition
	case errors.Is(err, engine.ErrAlreadyMember):
		return connect.CodeAlreadyExists
	case errors.Is(err, engine.ErrGenerationExhausted):
		return connect.CodeResourceExhausted
	case errors.Is(err, engine.ErrConflict):
		return connect.CodeAborted
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return connect.CodeUnauthenticated
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// requireCaller returns the authenticated caller, or Unauthenticated when the
// handler was mounted without the auth interceptor.
func requireCaller(ctx context.Context) (models.Caller, error) {
	caller := middleware.CallerFrom(ctx)
	if caller.UserID == "" {
		return models.Caller{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return caller, nil
}
