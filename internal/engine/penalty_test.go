package engine

import (
	"context"
	"testing"
	"time"

	"hunterquest/internal/storage"
)

func TestSyncSkipsTrackerTouchedToday(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	day1 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	freezeTime(svc, day1)
	u, _ := joinNewMission(t, svc, gen, 2, 5)

	syncs, err := svc.SyncTrackers(ctx, u.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(syncs) != 0 {
		t.Fatalf("same-day sync touched %d trackers, want 0", len(syncs))
	}
}

func TestSkipPenaltyOnMissedDays(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	day1 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	freezeTime(svc, day1)
	u, tr := joinNewMission(t, svc, gen, 2, 5)

	// Close day 1 fully so the streak is live and coins exist to lose.
	for i := 0; i < 2; i++ {
		tr = getTrackerT(t, svc, tr.ID)
		if _, err := svc.CompleteQuest(ctx, u.ID, tr.ID, tr.RemainingQuests[0]); err != nil {
			t.Fatalf("complete day1 quest %d: %v", i+1, err)
		}
	}

	// Two missed calendar days land in the skip window.
	freezeTime(svc, day1.Add(3*24*time.Hour))
	syncs, err := svc.SyncTrackers(ctx, u.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(syncs) != 1 || syncs[0].Penalty != PenaltySkip {
		t.Fatalf("sync=%+v, want one skip penalty", syncs)
	}

	u2 := getUserT(t, svc, u.ID)
	if u2.Coins != 0 {
		// 10 coins earned on day 1 minus the 10 coin skip penalty.
		t.Fatalf("coins=%d, want 0", u2.Coins)
	}
	if u2.XP != 24 {
		// 25 quarter-reward XP minus the 1 point skip stat penalty.
		t.Fatalf("xp=%d, want 24", u2.XP)
	}

	tr = getTrackerT(t, svc, tr.ID)
	if len(tr.PenaltiesApplied) != 1 {
		t.Fatalf("penalties logged=%d, want 1", len(tr.PenaltiesApplied))
	}
	if tr.Streak != 1 {
		// Skips sting through coins and XP. The streak survives.
		t.Fatalf("streak=%d after skip, want 1", tr.Streak)
	}
	if len(tr.RemainingQuests) != 2 {
		t.Fatalf("remaining=%d after refresh, want 2", len(tr.RemainingQuests))
	}

	// The refresh stamped today, so a second sync is a no-op.
	syncs, err = svc.SyncTrackers(ctx, u.ID)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if len(syncs) != 0 {
		t.Fatalf("second sync applied %d refreshes, want 0", len(syncs))
	}
}

func TestPartialProgressDoesNotDeferPenalty(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	day1 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	freezeTime(svc, day1)
	u, tr := joinNewMission(t, svc, gen, 2, 5)

	// One of two quests done: the day never closed.
	if _, err := svc.CompleteQuest(ctx, u.ID, tr.ID, tr.RemainingQuests[0]); err != nil {
		t.Fatalf("complete quest: %v", err)
	}

	freezeTime(svc, day1.Add(3*24*time.Hour))
	syncs, err := svc.SyncTrackers(ctx, u.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(syncs) != 1 || syncs[0].Penalty != PenaltySkip {
		t.Fatalf("sync=%+v, want skip despite partial day1 progress", syncs)
	}
}

func TestMissionFailAfterWeekOfInactivity(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	day1 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	freezeTime(svc, day1)
	u, tr := joinNewMission(t, svc, gen, 2, 5)

	freezeTime(svc, day1.Add(9*24*time.Hour))
	syncs, err := svc.SyncTrackers(ctx, u.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(syncs) != 1 || syncs[0].Penalty != PenaltyMissionFail || !syncs[0].Deleted {
		t.Fatalf("sync=%+v, want one terminal mission_fail", syncs)
	}

	got, err := svc.TrackerRepo().Get(ctx, tr.ID)
	if err != nil {
		t.Fatalf("get tracker: %v", err)
	}
	if got != nil {
		t.Fatalf("tracker survived mission failure")
	}

	// Fail penalties floor at zero on a fresh hunter.
	u2 := getUserT(t, svc, u.ID)
	if u2.Level != 1 || u2.XP != 0 || u2.Coins != 0 {
		t.Fatalf("hunter after fail level=%d xp=%d coins=%d, want 1/0/0", u2.Level, u2.XP, u2.Coins)
	}
}

func TestDailyRefreshRejectsUnknownPenalty(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	u, tr := joinNewMission(t, svc, gen, 1, 3)

	if _, err := svc.DailyRefresh(ctx, u.ID, tr.ID, PenaltyType("meteor")); err == nil {
		t.Fatalf("expected validation error for unknown penalty type")
	}
	if tr2 := getTrackerT(t, svc, tr.ID); tr2.Status != storage.TrackerActive {
		t.Fatalf("tracker state changed on rejected refresh")
	}
}
