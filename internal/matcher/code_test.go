package matcher

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestGenerate_Format(t *testing.T) {
	gen := NewCodeGenerator(0)
	never := func(context.Context, string) (bool, error) { return false, nil }

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := gen.Generate(context.Background(), never)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if !ValidCode(code) {
			t.Fatalf("code %q does not match ^[0-9A-F]{6}$", code)
		}
		seen[code] = true
	}

	if len(seen) < 190 {
		t.Errorf("expected mostly distinct codes, got %d of 200", len(seen))
	}
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	gen := NewCodeGenerator(5)
	// Deterministic source: first candidate "000000", second "010101".
	gen.random = bytes.NewReader([]byte{0, 0, 0, 1, 1, 1})

	calls := 0
	exists := func(_ context.Context, code string) (bool, error) {
		calls++
		return code == "000000", nil
	}

	code, err := gen.Generate(context.Background(), exists)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if code != "010101" {
		t.Errorf("code = %q, want 010101", code)
	}
	if calls != 2 {
		t.Errorf("exists called %d times, want 2", calls)
	}
}

func TestGenerate_Exhausted(t *testing.T) {
	gen := NewCodeGenerator(10)
	calls := 0
	always := func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := gen.Generate(context.Background(), always)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
	if calls != 10 {
		t.Errorf("exists called %d times, want 10", calls)
	}
}

func TestGenerate_ExistsError(t *testing.T) {
	gen := NewCodeGenerator(10)
	boom := errors.New("db down")
	failing := func(context.Context, string) (bool, error) { return false, boom }

	_, err := gen.Generate(context.Background(), failing)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestClaim_SharesBudget(t *testing.T) {
	gen := NewCodeGenerator(6)
	// Alternate: odd draws are already taken, even draws lose the claim race.
	checks, claims := 0, 0
	exists := func(context.Context, string) (bool, error) {
		checks++
		return checks%2 == 1, nil
	}
	lose := func(context.Context, string) (bool, error) {
		claims++
		return false, nil
	}

	_, err := gen.Claim(context.Background(), exists, lose)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
	if checks != 6 {
		t.Errorf("drew %d candidates, want 6", checks)
	}
	if claims != 3 {
		t.Errorf("claimed %d times, want 3", claims)
	}
}

func TestClaim_RetriesLostClaim(t *testing.T) {
	gen := NewCodeGenerator(5)
	gen.random = bytes.NewReader([]byte{0, 0, 0, 1, 1, 1})
	never := func(context.Context, string) (bool, error) { return false, nil }
	claimOnlySecond := func(_ context.Context, code string) (bool, error) {
		return code == "010101", nil
	}

	code, err := gen.Claim(context.Background(), never, claimOnlySecond)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if code != "010101" {
		t.Errorf("code = %q, want 010101", code)
	}
}

func TestClaim_ClaimError(t *testing.T) {
	gen := NewCodeGenerator(5)
	boom := errors.New("insert failed")
	never := func(context.Context, string) (bool, error) { return false, nil }
	failing := func(context.Context, string) (bool, error) { return false, boom }

	_, err := gen.Claim(context.Background(), never, failing)
	if !errors.Is(err, boom) {
		t.Fatalf("expected claim error, got %v", err)
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  ab12cd "); got != "AB12CD" {
		t.Errorf("NormalizeCode() = %q, want AB12CD", got)
	}
}
