package engine

import (
	"errors"

	"github.com/mmynk/biteswipe/internal/matcher"
)

// Domain errors. Callers match them with errors.Is; the RPC layer maps each
// to a status code.
var (
	ErrValidation    = errors.New("invalid argument")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("access denied")
	ErrAlreadyMember = errors.New("already a member of this group")
	ErrNotMember     = errors.New("not a member of this group")
	ErrConflict      = errors.New("too many concurrent updates, try again")

	ErrGenerationExhausted = matcher.ErrGenerationExhausted
)
