package amqp

import (
	"testing"
	"time"
)

func TestReconcileMessageRoundTrip(t *testing.T) {
	msg := NewReconcileMessage("user-1", ReasonCreate)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := ReconcileMessageFromJSON(body)
	if err != nil {
		t.Fatalf("ReconcileMessageFromJSON() error = %v", err)
	}

	if got.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", got.UserID, "user-1")
	}
	if got.Reason != ReasonCreate {
		t.Errorf("Reason = %q, want %q", got.Reason, ReasonCreate)
	}
	if got.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("Timestamp too old: %v", got.Timestamp)
	}
}

func TestReconcileMessageFromJSONMalformed(t *testing.T) {
	if _, err := ReconcileMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
