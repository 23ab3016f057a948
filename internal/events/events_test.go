package events

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestEvent_JSON(t *testing.T) {
	ev := Event{
		Type:       MemberJoined,
		GroupID:    "g1",
		UserID:     "u1",
		OccurredAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"type":"member.joined","group_id":"g1","user_id":"u1","occurred_at":"2026-03-14T12:00:00Z"}`
	if string(body) != want {
		t.Errorf("got %s, want %s", body, want)
	}
}

func TestLogPublisher(t *testing.T) {
	var p Publisher = LogPublisher{}
	if err := p.Publish(context.Background(), Event{Type: GroupCreated, GroupID: "g1"}); err != nil {
		t.Errorf("Publish failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNewNSQPublisher_RequiresTopic(t *testing.T) {
	_, err := NewNSQPublisher("127.0.0.1:4150", "")
	if err == nil || !strings.Contains(err.Error(), "topic") {
		t.Errorf("err = %v, want topic error", err)
	}
}
