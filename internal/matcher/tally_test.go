package matcher

import (
	"testing"

	"github.com/mmynk/biteswipe/internal/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		members     []string
		preferences map[string][]string
		wantID      string
		wantOK      bool
	}{
		{
			name:    "clear winner",
			members: []string{"u1", "u2"},
			preferences: map[string][]string{
				"u1": {"r2", "r1"},
				"u2": {"r1"},
			},
			wantID: "r1",
			wantOK: true,
		},
		{
			name:    "tie goes to smallest id",
			members: []string{"u1", "u2"},
			preferences: map[string][]string{
				"u1": {"rB"},
				"u2": {"rA"},
			},
			wantID: "rA",
			wantOK: true,
		},
		{
			name:    "three-way tie",
			members: []string{"u1", "u2", "u3"},
			preferences: map[string][]string{
				"u1": {"pizza", "sushi"},
				"u2": {"tacos", "sushi"},
				"u3": {"tacos", "pizza"},
			},
			wantID: "pizza",
			wantOK: true,
		},
		{
			name:    "all empty lists",
			members: []string{"u1", "u2"},
			preferences: map[string][]string{
				"u1": {},
				"u2": {},
			},
			wantOK: false,
		},
		{
			name:    "duplicate likes count once per member",
			members: []string{"u1", "u2"},
			preferences: map[string][]string{
				"u1": {"r2", "r2", "r2"},
				"u2": {"r1", "r2"},
			},
			wantID: "r2",
			wantOK: true,
		},
		{
			name:    "non-member entries are ignored",
			members: []string{"u1"},
			preferences: map[string][]string{
				"u1":   {"r9"},
				"gone": {"r1"},
				"left": {"r1"},
			},
			wantID: "r9",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := &models.Group{Members: tt.members, Preferences: tt.preferences}

			// Repeat to catch any dependence on map iteration order.
			for i := 0; i < 50; i++ {
				gotID, gotOK := Resolve(group)
				if gotOK != tt.wantOK {
					t.Fatalf("Resolve() ok = %v, want %v", gotOK, tt.wantOK)
				}
				if gotID != tt.wantID {
					t.Fatalf("Resolve() = %q, want %q", gotID, tt.wantID)
				}
			}
		})
	}
}

func TestCountLikes(t *testing.T) {
	tally := CountLikes(
		[]string{"u1", "u2", "u3"},
		map[string][]string{
			"u1": {"r1", "r2"},
			"u2": {"r1"},
		},
	)

	if tally["r1"] != 2 {
		t.Errorf("r1 = %d, want 2", tally["r1"])
	}
	if tally["r2"] != 1 {
		t.Errorf("r2 = %d, want 1", tally["r2"])
	}
	if len(tally) != 2 {
		t.Errorf("tally size = %d, want 2", len(tally))
	}
}

func TestTallyBest_Empty(t *testing.T) {
	id, count := Tally{}.Best()
	if id != "" || count != 0 {
		t.Errorf("Best() = (%q, %d), want (\"\", 0)", id, count)
	}
}
