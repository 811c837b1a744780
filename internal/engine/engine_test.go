package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"hunterquest/internal/storage"
)

// stubGen is a canned ContentGenerator for tests.
type stubGen struct {
	plan       *MissionPlan
	quests     []QuestPlan
	missionErr error
	regenErr   error
}

func (g *stubGen) GenerateMission(ctx context.Context, goal string, durationDays int) (*MissionPlan, error) {
	if g.missionErr != nil {
		return nil, g.missionErr
	}
	return g.plan, nil
}

func (g *stubGen) RegenerateQuests(ctx context.Context, req UpgradeRequest) ([]QuestPlan, error) {
	if g.regenErr != nil {
		return nil, g.regenErr
	}
	return g.quests, nil
}

func testPlan(questCount int) *MissionPlan {
	stats := []Stat{StatEndurance, StatStrength, StatIntelligence, StatAgility}
	quests := make([]QuestPlan, 0, questCount)
	for i := 0; i < questCount; i++ {
		quests = append(quests, QuestPlan{Title: fmt.Sprintf("Drill %d", i+1), Stat: stats[i%len(stats)], XP: 10})
	}
	return &MissionPlan{
		Title:       "30 Days of Iron",
		Description: "Daily conditioning",
		Quests:      quests,
		RewardXP:    100,
		RewardCoins: 40,
		Special:     SpecialNone,
		Penalty:     PenaltyPlan{FailCoins: 20, FailStats: 3, SkipCoins: 10, SkipStats: 1},
		Rank:        RankE,
	}
}

func newTestService(t *testing.T, gen ContentGenerator) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := NewService(db, gen)
	return svc, func() { _ = db.Close() }
}

func freezeTime(svc *Service, at time.Time) {
	svc.now = func() time.Time { return at }
}

// joinNewMission creates a hunter, generates a mission of questCount
// quests over durationDays, and joins it.
func joinNewMission(t *testing.T, svc *Service, gen *stubGen, questCount, durationDays int) (*storage.User, *storage.Tracker) {
	t.Helper()
	ctx := context.Background()

	gen.plan = testPlan(questCount)
	u, err := svc.Hunter(ctx, "main")
	if err != nil {
		t.Fatalf("hunter: %v", err)
	}
	m, err := svc.CreateMission(ctx, "get stronger", durationDays)
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}
	tr, err := svc.JoinMission(ctx, u.ID, m.ID)
	if err != nil {
		t.Fatalf("join mission: %v", err)
	}
	return u, tr
}

func getUserT(t *testing.T, svc *Service, id string) *storage.User {
	t.Helper()
	u, err := svc.UserRepo().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u == nil {
		t.Fatalf("user %s not found", id)
	}
	return u
}

func getTrackerT(t *testing.T, svc *Service, id string) *storage.Tracker {
	t.Helper()
	tr, err := svc.TrackerRepo().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get tracker: %v", err)
	}
	if tr == nil {
		t.Fatalf("tracker %s not found", id)
	}
	return tr
}

func TestHunterCreateAndReuse(t *testing.T) {
	svc, cleanup := newTestService(t, &stubGen{})
	defer cleanup()
	ctx := context.Background()

	u, err := svc.Hunter(ctx, "main")
	if err != nil {
		t.Fatalf("hunter: %v", err)
	}
	if u.Level != 1 || u.XP != 0 || u.Rank != string(RankE) {
		t.Fatalf("fresh hunter level=%d xp=%d rank=%q, want 1/0/E", u.Level, u.XP, u.Rank)
	}
	if len(u.Stats) != len(AllStats) {
		t.Fatalf("fresh hunter has %d stats, want %d", len(u.Stats), len(AllStats))
	}

	again, err := svc.Hunter(ctx, "main")
	if err != nil {
		t.Fatalf("hunter again: %v", err)
	}
	if again.ID != u.ID {
		t.Fatalf("hunter lookup returned a new user")
	}

	if _, err := svc.Hunter(ctx, "  "); err == nil {
		t.Fatalf("expected error for blank hunter name")
	}
}

func TestCreateMissionRejectsInvalidPlan(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	bad := testPlan(2)
	bad.RewardXP = 9999
	gen.plan = bad
	if _, err := svc.CreateMission(ctx, "goal", 7); err == nil {
		t.Fatalf("expected validation error for out-of-range reward")
	}

	gen.plan = nil
	gen.missionErr = errors.New("boom")
	var extErr ExternalServiceError
	if _, err := svc.CreateMission(ctx, "goal", 7); !errors.As(err, &extErr) {
		t.Fatalf("generator failure err=%v, want ExternalServiceError", err)
	}

	missions, err := svc.MissionRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list missions: %v", err)
	}
	if len(missions) != 0 {
		t.Fatalf("rejected plans must leave no missions, found %d", len(missions))
	}
}

func TestJoinMissionFlattensEnvelope(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	u, tr := joinNewMission(t, svc, gen, 2, 7)

	if len(tr.CurrentQuests) != 2 || len(tr.RemainingQuests) != 2 {
		t.Fatalf("tracker quests current=%d remaining=%d, want 2/2", len(tr.CurrentQuests), len(tr.RemainingQuests))
	}
	if tr.Reward.XP != 100 || tr.FailPenalty.Coins != 20 || tr.SkipPenalty.Coins != 10 {
		t.Fatalf("envelope not copied onto tracker: %+v", tr)
	}
	if tr.Status != storage.TrackerActive {
		t.Fatalf("tracker status=%q, want active", tr.Status)
	}

	if u2 := getUserT(t, svc, u.ID); u2.TotalMissions != 1 {
		t.Fatalf("TotalMissions=%d, want 1", u2.TotalMissions)
	}

	// Second join of the same mission is rejected while the first
	// tracker is still active.
	if _, err := svc.JoinMission(ctx, u.ID, tr.MissionID); err == nil {
		t.Fatalf("expected duplicate-join rejection")
	}
}

func TestCompleteQuestDayAndMission(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	freezeTime(svc, day1)

	u, tr := joinNewMission(t, svc, gen, 2, 2)

	// First quest of the day: stat XP only, no day close.
	res, err := svc.CompleteQuest(ctx, u.ID, tr.ID, tr.RemainingQuests[0])
	if err != nil {
		t.Fatalf("complete quest 1: %v", err)
	}
	if res.DayCompleted || res.RewardXP != 0 {
		t.Fatalf("day closed after 1 of 2 quests: %+v", res)
	}
	if res.StatXPAwarded != 10 {
		t.Fatalf("stat xp=%d, want 10", res.StatXPAwarded)
	}

	// Re-submitting the same quest is rejected.
	var nfErr NotFoundError
	if _, err := svc.CompleteQuest(ctx, u.ID, tr.ID, res.QuestID); !errors.As(err, &nfErr) {
		t.Fatalf("double submit err=%v, want NotFoundError", err)
	}

	// Second quest closes the day: streak, daycount, quarter reward.
	tr = getTrackerT(t, svc, tr.ID)
	res, err = svc.CompleteQuest(ctx, u.ID, tr.ID, tr.RemainingQuests[0])
	if err != nil {
		t.Fatalf("complete quest 2: %v", err)
	}
	if !res.DayCompleted || res.Streak != 1 || res.Daycount != 1 {
		t.Fatalf("day close streak=%d daycount=%d completed=%v, want 1/1/true", res.Streak, res.Daycount, res.DayCompleted)
	}
	if res.RewardXP != 25 || res.RewardCoins != 10 {
		t.Fatalf("quarter reward xp=%d coins=%d, want 25/10", res.RewardXP, res.RewardCoins)
	}

	// Next day: sync resets the remaining set without penalty.
	day2 := day1.Add(24 * time.Hour)
	freezeTime(svc, day2)
	syncs, err := svc.SyncTrackers(ctx, u.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(syncs) != 1 || syncs[0].Penalty != PenaltyNone {
		t.Fatalf("day2 sync=%+v, want one PenaltyNone refresh", syncs)
	}

	// Final day pays the reward in full and completes the mission.
	tr = getTrackerT(t, svc, tr.ID)
	if len(tr.RemainingQuests) != 2 {
		t.Fatalf("remaining after refresh=%d, want 2", len(tr.RemainingQuests))
	}
	if _, err := svc.CompleteQuest(ctx, u.ID, tr.ID, tr.RemainingQuests[0]); err != nil {
		t.Fatalf("complete day2 quest 1: %v", err)
	}
	tr = getTrackerT(t, svc, tr.ID)
	res, err = svc.CompleteQuest(ctx, u.ID, tr.ID, tr.RemainingQuests[0])
	if err != nil {
		t.Fatalf("complete day2 quest 2: %v", err)
	}
	if !res.MissionCompleted || res.RewardXP != 100 || res.RewardCoins != 40 {
		t.Fatalf("final day result=%+v, want full reward and MissionCompleted", res)
	}

	tr = getTrackerT(t, svc, tr.ID)
	if tr.Status != storage.TrackerCompleted {
		t.Fatalf("tracker status=%q, want completed", tr.Status)
	}
	u2 := getUserT(t, svc, u.ID)
	if !u2.HasCompletedTracker(tr.ID) {
		t.Fatalf("completed tracker not recorded on hunter")
	}

	// Hunter XP/level must match the ledger applied to the same deltas.
	want := &storage.User{Level: 1}
	DefaultLedger.ApplyXP(want, 25)
	DefaultLedger.ApplyXP(want, 100)
	if u2.Level != want.Level || u2.XP != want.XP {
		t.Fatalf("hunter level=%d xp=%d, want %d/%d", u2.Level, u2.XP, want.Level, want.XP)
	}
	if u2.Coins != 50 {
		t.Fatalf("coins=%d, want 50", u2.Coins)
	}

	// A completed tracker no longer accepts completions.
	if _, err := svc.CompleteQuest(ctx, u.ID, tr.ID, tr.CurrentQuests[0]); err == nil {
		t.Fatalf("expected error completing quest on a completed tracker")
	}
}

func TestAbandonAndDeleteTracker(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	u, tr := joinNewMission(t, svc, gen, 1, 3)

	if err := svc.AbandonTracker(ctx, u.ID, tr.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	got, err := svc.TrackerRepo().Get(ctx, tr.ID)
	if err != nil {
		t.Fatalf("get tracker: %v", err)
	}
	if got != nil {
		t.Fatalf("tracker survived abandon")
	}

	// Abandoning does not roll back progression counters.
	if u2 := getUserT(t, svc, u.ID); u2.TotalMissions != 1 {
		t.Fatalf("TotalMissions=%d after abandon, want 1", u2.TotalMissions)
	}

	var nfErr NotFoundError
	if err := svc.DeleteTracker(ctx, u.ID, tr.ID); !errors.As(err, &nfErr) {
		t.Fatalf("delete missing tracker err=%v, want NotFoundError", err)
	}
}
