// Package matcher holds the pure algorithms behind group matching:
// join code generation, the voting-completeness check, the like tally with
// its tie-break, and group expiry.
package matcher

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// CodeLength is the number of hex characters in a group code.
const CodeLength = 6

// DefaultCodeAttempts bounds how many candidates Generate tries.
const DefaultCodeAttempts = 10

// ErrGenerationExhausted is returned when every candidate code was taken.
var ErrGenerationExhausted = errors.New("unable to generate a unique group code")

var codePattern = regexp.MustCompile(`^[0-9A-F]{6}$`)

// ExistsFunc reports whether a code is already used by a group.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// CodeGenerator produces short uppercase hex join codes.
type CodeGenerator struct {
	attempts int
	random   io.Reader
}

// NewCodeGenerator creates a generator that gives up after attempts
// collisions. Non-positive values fall back to DefaultCodeAttempts.
func NewCodeGenerator(attempts int) *CodeGenerator {
	if attempts <= 0 {
		attempts = DefaultCodeAttempts
	}
	return &CodeGenerator{attempts: attempts, random: rand.Reader}
}

// Attempts returns the retry budget.
func (g *CodeGenerator) Attempts() int {
	return g.attempts
}

// Candidate returns one random code without checking for collisions.
func (g *CodeGenerator) Candidate() (string, error) {
	b := make([]byte, CodeLength/2)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// ClaimFunc tries to take code, typically by inserting the row that owns it.
// It reports false when another writer took the code first.
type ClaimFunc func(ctx context.Context, code string) (bool, error)

// Generate returns a code for which exists reports false.
// Errors from exists abort generation immediately.
func (g *CodeGenerator) Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	return g.Claim(ctx, exists, func(context.Context, string) (bool, error) {
		return true, nil
	})
}

// Claim draws candidates until one is free according to exists and claim
// succeeds. Codes found taken and codes lost to a concurrent claim count
// against the same budget, so at most Attempts candidates are drawn.
// Errors from claim are returned as is.
func (g *CodeGenerator) Claim(ctx context.Context, exists ExistsFunc, claim ClaimFunc) (string, error) {
	for i := 0; i < g.attempts; i++ {
		code, err := g.Candidate()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check group code: %w", err)
		}
		if taken {
			continue
		}

		claimed, err := claim(ctx, code)
		if err != nil {
			return "", err
		}
		if claimed {
			return code, nil
		}
	}
	return "", ErrGenerationExhausted
}

// ValidCode reports whether code has the shape of a group code.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// NormalizeCode upper-cases and trims user input so "ab12cd " joins "AB12CD".
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
