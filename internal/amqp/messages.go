package amqp

import (
	"encoding/json"
	"time"
)

// Message operations. Sync asks the worker to push a local transaction to the
// remote store; delete asks it to remove one that was deleted locally.
const (
	OpSync   = "sync"
	OpDelete = "delete"
)

// TransactionSyncMessage is the lightweight envelope published after a local
// write. It carries only the transaction id and the operation; the worker
// fetches the full record from SQLite.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSyncMessage builds a message asking the worker to push the transaction.
func NewSyncMessage(id string) *TransactionSyncMessage {
	return &TransactionSyncMessage{ID: id, Op: OpSync, Timestamp: time.Now()}
}

// NewDeleteMessage builds a message asking the worker to delete the
// transaction remotely.
func NewDeleteMessage(id string) *TransactionSyncMessage {
	return &TransactionSyncMessage{ID: id, Op: OpDelete, Timestamp: time.Now()}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
