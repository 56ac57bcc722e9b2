package services

import (
	"context"
	"errors"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
	"github.com/cybertech-18/lakshpath-backend/internal/realtime/bus"
)

// Notifier delivers a new goal contract to its user. Callers log failures and
// carry on.
type Notifier interface {
	Send(ctx context.Context, user *types.User, goal *types.GoalContract, tone string) error
}

type logNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{log: log.With("service", "LogNotifier")}
}

func (n *logNotifier) Send(_ context.Context, user *types.User, goal *types.GoalContract, tone string) error {
	if goal == nil {
		return errors.New("goal required")
	}
	n.log.Info("goal notification",
		"user_id", userIDOf(user),
		"goal_id", goal.ID.String(),
		"title", goal.Title,
		"success_criteria", goal.SuccessCriteria,
		"nudges", len(goal.Nudges),
		"tone", tone,
	)
	return nil
}

type busNotifier struct {
	bus bus.Bus
}

// NewBusNotifier publishes goal notifications for downstream delivery workers.
func NewBusNotifier(b bus.Bus) Notifier {
	return &busNotifier{bus: b}
}

func (n *busNotifier) Send(ctx context.Context, user *types.User, goal *types.GoalContract, tone string) error {
	if n == nil || n.bus == nil {
		return errors.New("notification bus not configured")
	}
	if user == nil || goal == nil {
		return errors.New("user and goal required")
	}
	return n.bus.Publish(ctx, bus.Message{
		Event:  bus.EventGoalCreated,
		UserID: user.ID,
		Data: map[string]any{
			"goal_id":          goal.ID.String(),
			"milestone_id":     milestoneIDOf(goal),
			"title":            goal.Title,
			"success_criteria": goal.SuccessCriteria,
			"nudges":           []string(goal.Nudges),
			"end_date":         goal.EndDate,
			"tone":             tone,
			"name":             user.Name,
		},
	})
}

type multiNotifier []Notifier

// NewMultiNotifier sends to every notifier and joins their errors.
func NewMultiNotifier(ns ...Notifier) Notifier {
	out := make(multiNotifier, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multiNotifier) Send(ctx context.Context, user *types.User, goal *types.GoalContract, tone string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, user, goal, tone); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func userIDOf(u *types.User) string {
	if u == nil {
		return ""
	}
	return u.ID.String()
}

func milestoneIDOf(g *types.GoalContract) string {
	if g == nil || g.MilestoneID == nil {
		return ""
	}
	return g.MilestoneID.String()
}
