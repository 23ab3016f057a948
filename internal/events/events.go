// Package events publishes group lifecycle events to interested consumers
// (push notification workers, analytics). Publishing is best effort: the
// engine logs failures and carries on.
package events

import (
	"context"
	"log/slog"
	"time"
)

// Type identifies what happened.
type Type string

const (
	GroupCreated         Type = "group.created"
	GroupDeleted         Type = "group.deleted"
	MemberJoined         Type = "member.joined"
	MemberLeft           Type = "member.left"
	PreferencesSubmitted Type = "preferences.submitted"
	MatchResolved        Type = "match.resolved"
)

// Event is the payload sent on the wire as JSON.
type Event struct {
	Type         Type      `json:"type"`
	GroupID      string    `json:"group_id"`
	UserID       string    `json:"user_id,omitempty"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the structured log. Used when no broker is
// configured.
type LogPublisher struct{}

// Publish logs the event at debug level.
func (LogPublisher) Publish(_ context.Context, event Event) error {
	slog.Debug("Group event",
		"type", event.Type,
		"group_id", event.GroupID,
		"user_id", event.UserID,
		"restaurant_id", event.RestaurantID,
	)
	return nil
}

// Close is a no-op.
func (LogPublisher) Close() error { return nil }
