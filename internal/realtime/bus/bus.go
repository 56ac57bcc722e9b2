package bus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventGoalCreated = "goal.created"
)

// Message is one user-scoped event published on the bus.
type Message struct {
	Event     string         `json:"event"`
	UserID    uuid.UUID      `json:"user_id"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type Bus interface {
	Publish(ctx context.Context, msg Message) error
	StartForwarder(ctx context.Context, onMsg func(m Message)) error
	Close() error
}

func encode(msg Message) ([]byte, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return json.Marshal(msg)
}

func decode(raw string) (Message, error) {
	var msg Message
	err := json.Unmarshal([]byte(raw), &msg)
	return msg, err
}
