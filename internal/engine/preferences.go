package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/biteswipe/internal/events"
	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

// MaxLikedRestaurants caps one submission.
const MaxLikedRestaurants = 500

// SubmitPreferences records the restaurants the caller liked, replacing any
// earlier submission. An empty list is a valid vote for nothing. When this
// completes the vote, the match is resolved before returning.
func (e *Engine) SubmitPreferences(ctx context.Context, caller models.Caller, groupID string, liked []string) (*models.Group, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if len(liked) > MaxLikedRestaurants {
		return nil, fmt.Errorf("at most %d liked restaurants per submission: %w", MaxLikedRestaurants, ErrValidation)
	}
	clean := make([]string, 0, len(liked))
	for _, id := range liked {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("restaurant id must not be empty: %w", ErrValidation)
		}
		clean = append(clean, id)
	}

	group, err := e.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(caller.UserID) {
		return nil, ErrNotMember
	}

	err = e.store.SetPreferences(ctx, groupID, caller.UserID, clean)
	if errors.Is(err, storage.ErrNotFound) {
		// Left (or the group vanished) between the read and the write.
		return nil, ErrNotMember
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	e.metrics.Submissions.Inc()
	slog.Info("Preferences submitted",
		"group_id", groupID,
		"user_id", caller.UserID,
		"liked_count", len(clean),
	)
	e.publish(ctx, events.PreferencesSubmitted, groupID, caller.UserID, "")

	settled, err := e.settle(ctx, groupID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		// The submission is committed. A later GetMatch settles the vote.
		slog.Warn("Failed to settle group after submission", "group_id", groupID, "error", err)
		group.Preferences[caller.UserID] = clean
		return group, nil
	}
	return settled, err
}
