// Package engine coordinates groups, membership and preference voting on top
// of a storage.Store. Every operation takes the caller's identity explicitly
// and is safe to call concurrently, including for the same group.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/biteswipe/internal/events"
	"github.com/mmynk/biteswipe/internal/matcher"
	"github.com/mmynk/biteswipe/internal/metrics"
	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

// DefaultMaxRetries bounds compare-and-swap retries for one operation. Any
// number of concurrent writers up to this value on one group all succeed.
const DefaultMaxRetries = 10

// Options tune an Engine. Zero values select defaults.
type Options struct {
	GroupTTL     time.Duration
	CodeAttempts int
	MaxRetries   int
	Now          func() time.Time
	Publisher    events.Publisher
	Metrics      *metrics.Metrics
}

// Engine implements the group matching operations.
type Engine struct {
	store      storage.Store
	codes      *matcher.CodeGenerator
	ttl        time.Duration
	maxRetries int
	now        func() time.Time
	publisher  events.Publisher
	metrics    *metrics.Metrics
}

// New creates an Engine over store.
func New(store storage.Store, opts Options) *Engine {
	e := &Engine{
		store:      store,
		codes:      matcher.NewCodeGenerator(opts.CodeAttempts),
		ttl:        opts.GroupTTL,
		maxRetries: opts.MaxRetries,
		now:        opts.Now,
		publisher:  opts.Publisher,
		metrics:    opts.Metrics,
	}
	if e.ttl <= 0 {
		e.ttl = matcher.DefaultGroupTTL
	}
	if e.maxRetries <= 0 {
		e.maxRetries = DefaultMaxRetries
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.publisher == nil {
		e.publisher = events.LogPublisher{}
	}
	if e.metrics == nil {
		e.metrics = metrics.New(prometheus.NewRegistry())
	}
	return e
}

// IsExpired reports whether the group is past its expiry at the engine's
// current time. Expiry is advisory: an expired group cannot be joined but is
// otherwise usable until swept.
func (e *Engine) IsExpired(group *models.Group) bool {
	return matcher.IsExpired(group, e.now())
}

// SweepExpired deletes every group past its expiry and returns how many
// were removed.
func (e *Engine) SweepExpired(ctx context.Context) (int64, error) {
	n, err := e.store.DeleteExpiredGroups(ctx, e.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired groups: %w", err)
	}
	if n > 0 {
		e.metrics.GroupsDeleted.WithLabelValues("expired").Add(float64(n))
		slog.Info("Expired groups swept", "count", n)
	}
	return n, nil
}

// withRetry runs fn until it stops failing with a version conflict, at most
// maxRetries times.
func (e *Engine) withRetry(ctx context.Context, op string, fn func() error) error {
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		err := fn()
		if !errors.Is(err, storage.ErrVersionConflict) {
			return err
		}

		e.metrics.Conflicts.WithLabelValues(op).Inc()
		slog.Debug("Version conflict, retrying", "operation", op, "attempt", attempt)

		// Jitter keeps contending writers from retrying in lockstep.
		backoff := time.Duration(rand.IntN(attempt*2)+1) * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	slog.Warn("Retry budget exhausted", "operation", op, "retries", e.maxRetries)
	return fmt.Errorf("%s: %w", op, ErrConflict)
}

func (e *Engine) publish(ctx context.Context, typ events.Type, groupID, userID, restaurantID string) {
	ev := events.Event{
		Type:         typ,
		GroupID:      groupID,
		UserID:       userID,
		RestaurantID: restaurantID,
		OccurredAt:   e.now().UTC(),
	}
	if err := e.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("Failed to publish event", "type", typ, "group_id", groupID, "error", err)
	}
}

// loadGroup reads a group, translating storage errors.
func (e *Engine) loadGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := e.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return group, nil
}

func requireCaller(caller models.Caller) error {
	if caller.UserID == "" {
		return fmt.Errorf("caller identity is required: %w", ErrValidation)
	}
	return nil
}
