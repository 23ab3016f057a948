package matcher

import (
	"reflect"
	"testing"

	"github.com/mmynk/biteswipe/internal/models"
)

func TestAllMembersVoted(t *testing.T) {
	tests := []struct {
		name        string
		members     []string
		preferences map[string][]string
		want        bool
	}{
		{"nobody voted", []string{"u1", "u2"}, map[string][]string{}, false},
		{"one of two voted", []string{"u1", "u2"}, map[string][]string{"u1": {"r1"}}, false},
		{"everyone voted", []string{"u1", "u2"}, map[string][]string{"u1": {"r1"}, "u2": {}}, true},
		{"empty list counts as a vote", []string{"u1"}, map[string][]string{"u1": nil}, true},
		{"late joiner reopens voting", []string{"u1", "u2", "u3"}, map[string][]string{"u1": {"r1"}, "u2": {"r1"}}, false},
		{"no members", nil, map[string][]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := &models.Group{Members: tt.members, Preferences: tt.preferences}
			if got := AllMembersVoted(group); got != tt.want {
				t.Errorf("AllMembersVoted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPendingVoters(t *testing.T) {
	group := &models.Group{
		Members:     []string{"u1", "u2", "u3"},
		Preferences: map[string][]string{"u2": {"r1"}},
	}

	got := PendingVoters(group)
	want := []string{"u1", "u3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PendingVoters() = %v, want %v", got, want)
	}
}
