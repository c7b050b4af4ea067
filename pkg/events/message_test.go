package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewJSONMessage(t *testing.T) {
	id := uuid.New()
	msg, err := NewJSONMessage(id, 2, map[string]any{"warehouse_id": "north", "x": 7.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.UUID == "" {
		t.Error("expected a message uuid")
	}
	if got := msg.Metadata.Get(MetadataEventID); got != id.String() {
		t.Errorf("event_id: got %q, want %q", got, id)
	}
	if got := msg.Metadata.Get(MetadataEventVersion); got != "2" {
		t.Errorf("event_version: got %q, want 2", got)
	}
	var body map[string]any
	if err := json.Unmarshal(msg.Payload, &body); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if body["warehouse_id"] != "north" {
		t.Errorf("unexpected payload: %v", body)
	}
}

func TestNewJSONMessage_Unmarshalable(t *testing.T) {
	if _, err := NewJSONMessage(uuid.New(), 1, make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}
