package matcher

import (
	"time"

	"github.com/mmynk/biteswipe/internal/models"
)

// DefaultGroupTTL is how long a group stays live after creation.
const DefaultGroupTTL = 24 * time.Hour

// ExpiresAt returns the expiry for a group created at createdAt.
func ExpiresAt(createdAt time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = DefaultGroupTTL
	}
	return createdAt.Add(ttl)
}

// IsExpired reports whether the group is past its expiry at now.
// Expiry is advisory: it never clears a match that was already written.
func IsExpired(group *models.Group, now time.Time) bool {
	return now.After(group.ExpiresAt)
}
