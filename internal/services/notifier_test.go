package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
	"github.com/cybertech-18/lakshpath-backend/internal/realtime/bus"
)

type fakeBus struct {
	published []bus.Message
	err       error
}

func (b *fakeBus) Publish(_ context.Context, msg bus.Message) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, msg)
	return nil
}

func (b *fakeBus) StartForwarder(context.Context, func(bus.Message)) error { return nil }
func (b *fakeBus) Close() error                                              { return nil }

func TestBusNotifier_Publishes(t *testing.T) {
	fb := &fakeBus{}
	mid := uuid.New()
	u := &types.User{ID: uuid.New(), Name: "Asha"}
	g := &types.GoalContract{ID: uuid.New(), MilestoneID: &mid, Title: "Build API", SuccessCriteria: "ship it", Nudges: []string{"a"}}

	if err := NewBusNotifier(fb).Send(context.Background(), u, g, "focused"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(fb.published) != 1 {
		t.Fatalf("want=1 message got=%d", len(fb.published))
	}
	msg := fb.published[0]
	if msg.Event != bus.EventGoalCreated || msg.UserID != u.ID || msg.Data["milestone_id"] != mid.String() || msg.Data["tone"] != "focused" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestMultiNotifier_JoinsErrors(t *testing.T) {
	boom := errors.New("redis down")
	n := NewMultiNotifier(NewLogNotifier(logger.Nop()), NewBusNotifier(&fakeBus{err: boom}), nil)
	err := n.Send(context.Background(), &types.User{ID: uuid.New()}, &types.GoalContract{ID: uuid.New()}, "calm")
	if !errors.Is(err, boom) {
		t.Fatalf("want joined bus error got=%v", err)
	}
}
