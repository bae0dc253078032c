package amqp

import (
	"encoding/json"
	"time"
)

const (
	ReasonCreate = "create"
	ReasonDelete = "delete"
)

// ReconcileMessage asks the worker to re-run goal reconciliation for one
// user. It is published after every transaction mutation; the worker
// fetches the live goals itself, so the message stays payload-free.
type ReconcileMessage struct {
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"` // ReasonCreate or ReasonDelete
	Timestamp time.Time `json:"timestamp"`
}

func NewReconcileMessage(userID, reason string) *ReconcileMessage {
	return &ReconcileMessage{
		UserID:    userID,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func (m *ReconcileMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReconcileMessageFromJSON(data []byte) (*ReconcileMessage, error) {
	var msg ReconcileMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
