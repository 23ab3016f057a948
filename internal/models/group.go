package models

import (
	"slices"
	"time"
)

// Group represents a set of users picking a restaurant together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Friday Lunch").
	Name string

	// Code is the 6-character uppercase hex code other users join with.
	// Unique among existing groups and never changes.
	Code string

	// CreatorID is the user who owns the group. Always one of Members.
	// When the creator leaves, the role passes to Members[0].
	CreatorID string

	// Members are user IDs in join order. Never empty while the group exists.
	Members []string

	// Preferences maps a member's user ID to the restaurant IDs they liked.
	// A key is present once the member has submitted, even with an empty list.
	Preferences map[string][]string

	// MatchedRestaurantID is empty until a match is resolved. Once set it is
	// never overwritten.
	MatchedRestaurantID string

	// CreatedAt is when the group was created.
	CreatedAt time.Time

	// ExpiresAt is CreatedAt plus the group TTL. Set once, never recomputed.
	ExpiresAt time.Time

	// Version increases on every membership change. Used for optimistic
	// concurrency control by the store.
	Version int64
}

// HasMember reports whether userID is currently in the group.
func (g *Group) HasMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}

// HasVoted reports whether userID has a recorded preference submission.
func (g *Group) HasVoted(userID string) bool {
	_, ok := g.Preferences[userID]
	return ok
}
