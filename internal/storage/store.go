// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/biteswipe/internal/models"
)

var (
	// ErrNotFound is returned when a group, member or restaurant is absent.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key already exists
	// (group code, membership).
	ErrDuplicate = errors.New("already exists")
	// ErrVersionConflict is returned when a compare-and-swap write sees a
	// version other than the one it expected.
	ErrVersionConflict = errors.New("version conflict")
)

// Store defines the persistence operations the matching engine relies on.
// Every mutation touches one field of a group atomically (append a member,
// set one preference key, set the match if unset) or is guarded by the
// group's version, so concurrent requests never lose each other's updates.
type Store interface {
	// CreateGroup persists a new group together with its creator's
	// membership. Returns ErrDuplicate if the code is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns a consistent snapshot of the group, its members in
	// join order and its preferences. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByCode is GetGroup keyed by join code.
	GetGroupByCode(ctx context.Context, code string) (*models.Group, error)

	// ListGroupsByMember returns every group containing userID, newest first.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// CodeExists reports whether any existing group uses code.
	CodeExists(ctx context.Context, code string) (bool, error)

	// AddMember appends userID to the end of the member list and bumps the
	// group version. Returns ErrNotFound or ErrDuplicate.
	AddMember(ctx context.Context, groupID, userID string) error

	// RemoveMember removes userID and its preferences and sets the creator
	// to creatorID, provided the group is still at expectedVersion.
	// Returns ErrVersionConflict otherwise.
	RemoveMember(ctx context.Context, groupID, userID, creatorID string, expectedVersion int64) error

	// DeleteGroup removes the group if it is still at expectedVersion.
	DeleteGroup(ctx context.Context, groupID string, expectedVersion int64) error

	// SetPreferences overwrites the liked list of one member. Returns
	// ErrNotFound if userID is not a member of the group.
	SetPreferences(ctx context.Context, groupID, userID string, liked []string) error

	// SetMatchIfUnset records the match unless one is already set.
	// Reports whether this call wrote it.
	SetMatchIfUnset(ctx context.Context, groupID, restaurantID string) (bool, error)

	// DeleteExpiredGroups removes groups whose expiry is before now.
	DeleteExpiredGroups(ctx context.Context, now time.Time) (int64, error)

	// UpsertRestaurant inserts or replaces a catalog entry.
	UpsertRestaurant(ctx context.Context, restaurant *models.Restaurant) error

	// GetRestaurant retrieves a catalog entry. Returns ErrNotFound if absent.
	GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error)

	// ListRestaurants returns the catalog, optionally filtered by cuisine.
	ListRestaurants(ctx context.Context, cuisine string) ([]*models.Restaurant, error)

	// Close releases any resources held by the store.
	Close() error
}
