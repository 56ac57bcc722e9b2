package career

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/data/repos/testutil"
	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
)

func TestMilestoneRepoGetNextAndUpdateStatus(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "milestones@example.com")
	q := testutil.SeedQuizResult(t, ctx, db, u.ID, "technology")
	rm, ms := testutil.SeedRoadmap(t, ctx, db, u.ID, q.ID, 3)

	repo := NewMilestoneRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	next, err := repo.GetNext(dbc, rm.ID, ms[0].Position)
	if err != nil {
		t.Fatalf("GetNext: %v", err)
	}
	if next == nil || next.ID != ms[1].ID {
		t.Fatalf("GetNext: want=%s got=%+v", ms[1].ID, next)
	}
	last, err := repo.GetNext(dbc, rm.ID, ms[2].Position)
	if err != nil {
		t.Fatalf("GetNext (last): %v", err)
	}
	if last != nil {
		t.Fatalf("GetNext (last): expected nil, got %+v", last)
	}

	now := time.Now().UTC()
	if err := repo.UpdateStatus(dbc, ms[0].ID, types.MilestoneStatusCompleted, &now); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := repo.GetByID(dbc, ms[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.MilestoneStatusCompleted || got.CompletedAt == nil {
		t.Fatalf("UpdateStatus: unexpected row %+v", got)
	}

	listed, err := repo.ListByRoadmap(dbc, rm.ID)
	if err != nil {
		t.Fatalf("ListByRoadmap: %v", err)
	}
	for i, m := range listed {
		if m.Position != i {
			t.Fatalf("ListByRoadmap: position order broken at %d: %d", i, m.Position)
		}
	}
}

func TestGoalContractUniquePerMilestone(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "goals@example.com")
	q := testutil.SeedQuizResult(t, ctx, db, u.ID, "design")
	_, ms := testutil.SeedRoadmap(t, ctx, db, u.ID, q.ID, 2)

	repo := NewGoalContractRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}
	mid := ms[1].ID
	now := time.Now().UTC()

	if _, err := repo.Create(dbc, []*types.GoalContract{{UserID: u.ID, MilestoneID: &mid, Title: "first", StartDate: now, EndDate: now}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(dbc, []*types.GoalContract{{UserID: u.ID, MilestoneID: &mid, Title: "second", StartDate: now, EndDate: now}})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create duplicate: want gorm.ErrDuplicatedKey got=%v", err)
	}
	n, err := repo.CountByMilestoneID(dbc, mid)
	if err != nil {
		t.Fatalf("CountByMilestoneID: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountByMilestoneID: want=1 got=%d", n)
	}
	got, err := repo.GetByMilestoneID(dbc, mid)
	if err != nil {
		t.Fatalf("GetByMilestoneID: %v", err)
	}
	if got == nil || got.Title != "first" || got.Status != types.GoalStatusActive {
		t.Fatalf("GetByMilestoneID: unexpected %+v", got)
	}
}

func TestRoadmapRepoGetLatestPreloadsOrderedMilestones(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "roadmaps@example.com")
	q := testutil.SeedQuizResult(t, ctx, db, u.ID, "data")
	rm, _ := testutil.SeedRoadmap(t, ctx, db, u.ID, q.ID, 4)

	repo := NewRoadmapRepo(db, testutil.Logger(t))
	got, err := repo.GetLatestByUser(dbctx.Context{Ctx: ctx}, u.ID)
	if err != nil {
		t.Fatalf("GetLatestByUser: %v", err)
	}
	if got == nil || got.ID != rm.ID {
		t.Fatalf("GetLatestByUser: want=%s got=%+v", rm.ID, got)
	}
	if len(got.Milestones) != 4 {
		t.Fatalf("milestones: want=4 got=%d", len(got.Milestones))
	}
	for i, m := range got.Milestones {
		if m.Position != i {
			t.Fatalf("milestones out of order at %d: %d", i, m.Position)
		}
	}

	none, err := repo.GetLatestByUser(dbctx.Context{Ctx: ctx}, uuid.New())
	if err != nil || none != nil {
		t.Fatalf("GetLatestByUser (unknown user): want nil,nil got %+v,%v", none, err)
	}
}

func TestInsightRepoListNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "insights@example.com")
	repo := NewInsightRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	base := time.Now().UTC().Add(-time.Hour)
	for i, typ := range []string{types.InsightTypeCareerExplanation, types.InsightTypeRoadmap, types.InsightTypeGoalContract} {
		row := &types.Insight{UserID: u.ID, Source: "gemini", Type: typ, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if _, err := repo.Create(dbc, []*types.Insight{row}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	got, err := repo.ListByUser(dbc, u.ID, 2)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByUser: want=2 got=%d", len(got))
	}
	if got[0].Type != types.InsightTypeGoalContract || got[1].Type != types.InsightTypeRoadmap {
		t.Fatalf("ListByUser: unexpected order %s,%s", got[0].Type, got[1].Type)
	}
}
