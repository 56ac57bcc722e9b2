package bus

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

func TestEncodeDecode(t *testing.T) {
	uid := uuid.New()
	raw, err := encode(Message{Event: EventGoalCreated, UserID: uid, Data: map[string]any{"title": "Learn Go"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg, err := decode(string(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Event != EventGoalCreated || msg.UserID != uid || msg.Data["title"] != "Learn Go" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.CreatedAt.IsZero() {
		t.Fatalf("encode should stamp created_at")
	}
}

func TestNewRedisBus_RequiresAddr(t *testing.T) {
	if _, err := NewRedisBus(logger.Nop(), RedisConfig{}); err == nil {
		t.Fatalf("expected error without address")
	}
	if _, err := NewRedisBus(nil, RedisConfig{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error without logger")
	}
}
