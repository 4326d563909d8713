package amqp

import (
	"encoding/json"
	"time"
)

// ReconcileMessage asks the worker to rebuild the spent amounts of one
// user's budgets. It carries only the user ID; the worker reads the ledger
// itself, so a stale or duplicated message is harmless.
type ReconcileMessage struct {
	UserID    string    `json:"userId"`
	Reason    string    `json:"reason"`
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
