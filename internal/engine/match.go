package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/biteswipe/internal/events"
	"github.com/mmynk/biteswipe/internal/matcher"
	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

// settle reloads the group and, if every current member has voted and no
// match is recorded yet, resolves and records one. Safe to call any number
// of times from any number of goroutines: the first write wins and later
// callers read it back.
func (e *Engine) settle(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := e.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.MatchedRestaurantID != "" || !matcher.AllMembersVoted(group) {
		return group, nil
	}

	restaurantID, ok := matcher.Resolve(group)
	if !ok {
		return group, nil
	}

	wrote, err := e.store.SetMatchIfUnset(ctx, groupID, restaurantID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}
	if wrote {
		e.metrics.Matches.Inc()
		slog.Info("Match resolved", "group_id", groupID, "restaurant_id", restaurantID)
		e.publish(ctx, events.MatchResolved, groupID, "", restaurantID)
	}

	return e.loadGroup(ctx, groupID)
}

// GetMatch reports the group's match status. The restaurant is looked up in
// the catalog when a match exists.
func (e *Engine) GetMatch(ctx context.Context, caller models.Caller, groupID string) (*models.MatchOutcome, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	group, err := e.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(caller.UserID) {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrForbidden)
	}

	if group.MatchedRestaurantID == "" && matcher.AllMembersVoted(group) {
		if group, err = e.settle(ctx, groupID); err != nil {
			return nil, err
		}
	}

	switch {
	case group.MatchedRestaurantID != "":
		restaurant, err := e.store.GetRestaurant(ctx, group.MatchedRestaurantID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("matched restaurant %s: %w", group.MatchedRestaurantID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load matched restaurant: %w", err)
		}
		return &models.MatchOutcome{
			Status:       models.MatchMatched,
			RestaurantID: group.MatchedRestaurantID,
			Restaurant:   restaurant,
		}, nil
	case matcher.AllMembersVoted(group):
		return &models.MatchOutcome{Status: models.MatchNone}, nil
	default:
		return &models.MatchOutcome{Status: models.MatchPending}, nil
	}
}
