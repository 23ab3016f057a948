package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmynk/biteswipe/internal/events"
	"github.com/mmynk/biteswipe/internal/matcher"
	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

// MaxGroupNameLength is the longest group name accepted, in characters.
const MaxGroupNameLength = 100

// LeaveResult describes what happened to the group after a member left.
// Exactly one of Deleted and Group is set.
type LeaveResult struct {
	// Deleted is true when the group no longer exists: the caller was the
	// last member, or the remaining members left before the group could be
	// read back.
	Deleted bool
	// Group is the state after the leave when the group remains.
	Group *models.Group
}

// CreateGroup creates a group with the caller as creator and sole member.
func (e *Engine) CreateGroup(ctx context.Context, caller models.Caller, name string) (*models.Group, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is required: %w", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxGroupNameLength {
		return nil, fmt.Errorf("group name longer than %d characters: %w", MaxGroupNameLength, ErrValidation)
	}

	exists := func(ctx context.Context, code string) (bool, error) {
		taken, err := e.store.CodeExists(ctx, code)
		if taken {
			e.metrics.CodeCollisions.Inc()
		}
		return taken, err
	}

	// Another create may take the same code between the check and the
	// insert. The unique index catches it and the draw counts against the
	// same code budget.
	var group *models.Group
	claim := func(ctx context.Context, code string) (bool, error) {
		now := e.now().UTC().Truncate(time.Second)
		candidate := &models.Group{
			Name:        name,
			Code:        code,
			CreatorID:   caller.UserID,
			Members:     []string{caller.UserID},
			Preferences: map[string][]string{},
			CreatedAt:   now,
			ExpiresAt:   matcher.ExpiresAt(now, e.ttl),
		}

		err := e.store.CreateGroup(ctx, candidate)
		if errors.Is(err, storage.ErrDuplicate) {
			e.metrics.CodeCollisions.Inc()
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to create group: %w", err)
		}
		group = candidate
		return true, nil
	}

	if _, err := e.codes.Claim(ctx, exists, claim); err != nil {
		return nil, err
	}

	e.metrics.GroupsCreated.Inc()
	slog.Info("Group created", "group_id", group.ID, "code", group.Code, "creator_id", caller.UserID)
	e.publish(ctx, events.GroupCreated, group.ID, caller.UserID, "")
	return group, nil
}

// JoinGroup adds the caller to the live group identified by code.
func (e *Engine) JoinGroup(ctx context.Context, caller models.Caller, code string) (*models.Group, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	code = matcher.NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("group code is required: %w", ErrValidation)
	}
	if !matcher.ValidCode(code) {
		return nil, fmt.Errorf("no group with code %q: %w", code, ErrNotFound)
	}

	group, err := e.store.GetGroupByCode(ctx, code)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no group with code %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}
	if e.IsExpired(group) {
		return nil, fmt.Errorf("group with code %q has expired: %w", code, ErrNotFound)
	}
	if group.HasMember(caller.UserID) {
		return nil, ErrAlreadyMember
	}

	err = e.store.AddMember(ctx, group.ID, caller.UserID)
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		return nil, ErrAlreadyMember
	case errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("no group with code %q: %w", code, ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	e.metrics.MembersJoined.Inc()
	slog.Info("Member joined group", "group_id", group.ID, "user_id", caller.UserID)
	e.publish(ctx, events.MemberJoined, group.ID, caller.UserID, "")

	return e.loadGroup(ctx, group.ID)
}

// LeaveGroup removes the caller from the group. The last member leaving
// deletes the group. A departing creator hands the role to the earliest
// remaining member.
func (e *Engine) LeaveGroup(ctx context.Context, caller models.Caller, groupID string) (*LeaveResult, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	var (
		deleted bool
		left    *models.Group
	)
	err := e.withRetry(ctx, "leave_group", func() error {
		group, err := e.loadGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if !group.HasMember(caller.UserID) {
			return ErrNotMember
		}

		remaining := make([]string, 0, len(group.Members)-1)
		for _, m := range group.Members {
			if m != caller.UserID {
				remaining = append(remaining, m)
			}
		}

		if len(remaining) == 0 {
			err = e.store.DeleteGroup(ctx, group.ID, group.Version)
			deleted = err == nil
		} else {
			creator := group.CreatorID
			if creator == caller.UserID {
				creator = remaining[0]
			}
			err = e.store.RemoveMember(ctx, group.ID, caller.UserID, creator, group.Version)
			if err == nil {
				left = withoutMember(group, caller.UserID, remaining, creator)
			}
		}
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if deleted {
		e.metrics.GroupsDeleted.WithLabelValues("empty").Inc()
		slog.Info("Last member left, group deleted", "group_id", groupID, "user_id", caller.UserID)
		e.publish(ctx, events.GroupDeleted, groupID, caller.UserID, "")
		return &LeaveResult{Deleted: true}, nil
	}

	slog.Info("Member left group", "group_id", groupID, "user_id", caller.UserID)
	e.publish(ctx, events.MemberLeft, groupID, caller.UserID, "")

	// The departure may have been the last thing the vote was waiting on.
	group, err := e.settle(ctx, groupID)
	if errors.Is(err, ErrNotFound) {
		// Everyone else left in the meantime.
		return &LeaveResult{Deleted: true}, nil
	}
	if err != nil {
		// The leave is committed. A later GetMatch settles the vote.
		slog.Warn("Failed to settle group after leave", "group_id", groupID, "error", err)
		return &LeaveResult{Group: left}, nil
	}
	return &LeaveResult{Group: group}, nil
}

// withoutMember returns the state RemoveMember committed for group.
func withoutMember(group *models.Group, userID string, remaining []string, creator string) *models.Group {
	left := *group
	left.Members = remaining
	left.CreatorID = creator
	left.Version = group.Version + 1
	left.Preferences = make(map[string][]string, len(group.Preferences))
	for member, liked := range group.Preferences {
		if member != userID {
			left.Preferences[member] = liked
		}
	}
	return &left
}

// GetGroup returns a group the caller belongs to.
func (e *Engine) GetGroup(ctx context.Context, caller models.Caller, groupID string) (*models.Group, error) {
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
	return group, nil
}

// ListGroups returns the groups the caller belongs to, newest first.
func (e *Engine) ListGroups(ctx context.Context, caller models.Caller) ([]*models.Group, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	groups, err := e.store.ListGroupsByMember(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}
