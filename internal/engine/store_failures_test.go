package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

// conflictingStore fails every membership swap as if another writer won.
type conflictingStore struct {
	storage.Store
	removes atomic.Int32
}

func (s *conflictingStore) RemoveMember(_ context.Context, groupID, _, _ string, _ int64) error {
	s.removes.Add(1)
	return fmt.Errorf("group %s: %w", groupID, storage.ErrVersionConflict)
}

// duplicateOnceStore loses the first insert to a concurrent create.
type duplicateOnceStore struct {
	storage.Store
	creates atomic.Int32
}

func (s *duplicateOnceStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if s.creates.Add(1) == 1 {
		return fmt.Errorf("code %s: %w", group.Code, storage.ErrDuplicate)
	}
	return s.Store.CreateGroup(ctx, group)
}

// failingMatchStore cannot record matches.
type failingMatchStore struct {
	storage.Store
}

func (failingMatchStore) SetMatchIfUnset(context.Context, string, string) (bool, error) {
	return false, errors.New("match write failed")
}

// vanishingStore hides the group once a member has been removed, as if the
// remaining members all left right after.
type vanishingStore struct {
	storage.Store
	removed atomic.Bool
}

func (s *vanishingStore) RemoveMember(ctx context.Context, groupID, userID, creatorID string, expectedVersion int64) error {
	if err := s.Store.RemoveMember(ctx, groupID, userID, creatorID, expectedVersion); err != nil {
		return err
	}
	s.removed.Store(true)
	return nil
}

func (s *vanishingStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	if s.removed.Load() {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return s.Store.GetGroup(ctx, groupID)
}

func TestEngine_LeaveGroupRetryBudgetExhausted(t *testing.T) {
	e, store, clock := setupTestEngine(t)
	ctx := context.Background()
	group := newGroupWith(t, e, "u1", "u2")

	conflicting := &conflictingStore{Store: store}
	contended := New(conflicting, Options{Now: clock.Now, MaxRetries: 4})

	_, err := contended.LeaveGroup(ctx, caller("u2"), group.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if got := conflicting.removes.Load(); got != 4 {
		t.Errorf("attempted %d swaps, want 4", got)
	}

	g, err := e.GetGroup(ctx, caller("u1"), group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if !reflect.DeepEqual(g.Members, []string{"u1", "u2"}) {
		t.Errorf("Members = %v, want unchanged [u1 u2]", g.Members)
	}
}

func TestEngine_CreateGroupRetriesDuplicateCode(t *testing.T) {
	e, store, clock := setupTestEngine(t)
	ctx := context.Background()

	dup := &duplicateOnceStore{Store: store}
	group, err := New(dup, Options{Now: clock.Now}).CreateGroup(ctx, caller("u1"), "Lunch")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if got := dup.creates.Load(); got != 2 {
		t.Errorf("insert attempts = %d, want 2", got)
	}

	got, err := e.GetGroup(ctx, caller("u1"), group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.Code != group.Code {
		t.Errorf("stored code = %q, want %q", got.Code, group.Code)
	}
}

func TestEngine_SubmitSucceedsWhenMatchWriteFails(t *testing.T) {
	e, store, clock := setupTestEngine(t)
	ctx := context.Background()
	group := newGroupWith(t, e, "u1", "u2")

	if _, err := e.SubmitPreferences(ctx, caller("u1"), group.ID, []string{"r1"}); err != nil {
		t.Fatalf("SubmitPreferences failed: %v", err)
	}

	broken := New(failingMatchStore{Store: store}, Options{Now: clock.Now})
	g, err := broken.SubmitPreferences(ctx, caller("u2"), group.ID, []string{"r1"})
	if err != nil {
		t.Fatalf("SubmitPreferences failed after commit: %v", err)
	}
	if !reflect.DeepEqual(g.Preferences["u2"], []string{"r1"}) {
		t.Errorf("Preferences[u2] = %v, want [r1]", g.Preferences["u2"])
	}
	if g.MatchedRestaurantID != "" {
		t.Errorf("MatchedRestaurantID = %q, want unset", g.MatchedRestaurantID)
	}

	outcome, err := e.GetMatch(ctx, caller("u1"), group.ID)
	if err != nil {
		t.Fatalf("GetMatch failed: %v", err)
	}
	if outcome.Status != models.MatchMatched || outcome.RestaurantID != "r1" {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
}

func TestEngine_LeaveSucceedsWhenMatchWriteFails(t *testing.T) {
	e, store, clock := setupTestEngine(t)
	ctx := context.Background()
	group := newGroupWith(t, e, "u1", "u2", "u3")

	for _, u := range []string{"u1", "u2"} {
		if _, err := e.SubmitPreferences(ctx, caller(u), group.ID, []string{"r2"}); err != nil {
			t.Fatalf("SubmitPreferences(%s) failed: %v", u, err)
		}
	}

	broken := New(failingMatchStore{Store: store}, Options{Now: clock.Now})
	result, err := broken.LeaveGroup(ctx, caller("u3"), group.ID)
	if err != nil {
		t.Fatalf("LeaveGroup failed after commit: %v", err)
	}
	if result.Deleted || result.Group == nil {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !reflect.DeepEqual(result.Group.Members, []string{"u1", "u2"}) {
		t.Errorf("Members = %v, want [u1 u2]", result.Group.Members)
	}

	outcome, err := e.GetMatch(ctx, caller("u1"), group.ID)
	if err != nil {
		t.Fatalf("GetMatch failed: %v", err)
	}
	if outcome.RestaurantID != "r2" {
		t.Errorf("RestaurantID = %q, want r2", outcome.RestaurantID)
	}
}

func TestEngine_LeaveReportsDeletedWhenGroupVanishes(t *testing.T) {
	e, store, clock := setupTestEngine(t)
	group := newGroupWith(t, e, "u1", "u2")

	vanishing := &vanishingStore{Store: store}
	result, err := New(vanishing, Options{Now: clock.Now}).LeaveGroup(context.Background(), caller("u2"), group.ID)
	if err != nil {
		t.Fatalf("LeaveGroup failed: %v", err)
	}
	if !result.Deleted || result.Group != nil {
		t.Errorf("result = %+v, want Deleted with no group", result)
	}
}
