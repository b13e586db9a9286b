package models

import (
	"encoding/json"
	"testing"
)

func TestMessageUnmarshalKnownFields(t *testing.T) {
	data := []byte(`{"id":"m1","user_name":"alice","timestamp":"2024-03-05T08:30:00Z","message":"hello"}`)
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.ID != "m1" || msg.UserName != "alice" || msg.Body != "hello" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Metadata != nil {
		t.Fatalf("expected no metadata, got %v", msg.Metadata)
	}
}

func TestMessageUnmarshalKeepsUnknownFields(t *testing.T) {
	data := []byte(`{"id":"m1","user_name":"alice","timestamp":"2024-03-05T08:30:00Z","message":"hi","channel":"general","reactions":3}`)
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	if len(msg.Metadata) != 2 {
		t.Fatalf("expected 2 metadata fields, got %v", msg.Metadata)
	}
	if string(msg.Metadata["channel"]) != `"general"` {
		t.Fatalf("expected channel metadata, got %s", msg.Metadata["channel"])
	}
}

func TestMessageTimeFormats(t *testing.T) {
	tests := []struct {
		timestamp string
		wantZero  bool
	}{
		{"2024-03-05T08:30:00Z", false},
		{"2024-03-05T08:30:00.123456Z", false},
		{"2024-03-05T08:30:00", false},
		{"2024-03-05 08:30:00", false},
		{"yesterday", true},
		{"", true},
	}
	for _, tc := range tests {
		got := Message{Timestamp: tc.timestamp}.Time()
		if got.IsZero() != tc.wantZero {
			t.Fatalf("timestamp %q: got %v", tc.timestamp, got)
		}
	}
}

func TestMessageBefore(t *testing.T) {
	early := Message{ID: "a", Timestamp: "2024-01-01T00:00:00Z"}
	late := Message{ID: "b", Timestamp: "2024-06-01T00:00:00Z"}
	if !early.Before(late) {
		t.Fatal("expected early < late")
	}
	if late.Before(early) {
		t.Fatal("expected late > early")
	}

	// Equal timestamps fall back to ID so ordering stays deterministic.
	twinA := Message{ID: "a", Timestamp: "2024-01-01T00:00:00Z"}
	twinB := Message{ID: "b", Timestamp: "2024-01-01T00:00:00Z"}
	if !twinA.Before(twinB) || twinB.Before(twinA) {
		t.Fatal("expected ID tiebreak")
	}

	// Unparseable timestamps sort before everything parseable.
	junk := Message{ID: "j", Timestamp: "not a time"}
	if !junk.Before(early) {
		t.Fatal("expected unparseable timestamp to sort first")
	}
}
