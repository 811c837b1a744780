package engine

import (
	"context"
	"errors"
	"testing"
)

func setStreak(t *testing.T, svc *Service, trackerID string, streak int) {
	t.Helper()
	tr := getTrackerT(t, svc, trackerID)
	tr.Streak = streak
	if err := svc.TrackerRepo().Update(context.Background(), tr); err != nil {
		t.Fatalf("set streak: %v", err)
	}
}

func TestUpgradeBelowStreakGateIsNoOp(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	u, tr := joinNewMission(t, svc, gen, 2, 5)
	setStreak(t, svc, tr.ID, 4)

	res, err := svc.UpgradeTracker(ctx, u.ID, tr.ID)
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if res.Upgraded {
		t.Fatalf("upgraded below the streak gate")
	}
	if tr2 := getTrackerT(t, svc, tr.ID); len(tr2.CurrentQuests) != 2 {
		t.Fatalf("quests changed on a gated upgrade")
	}
}

func TestUpgradeReplacesQuestsAndResetsDaycount(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	u, tr := joinNewMission(t, svc, gen, 2, 5)
	setStreak(t, svc, tr.ID, 6)
	gen.quests = []QuestPlan{
		{Title: "Run 5k", Stat: StatEndurance, XP: 22},
		{Title: "Deadlift session", Stat: StatStrength, XP: 22},
	}

	oldQuests := append([]string(nil), getTrackerT(t, svc, tr.ID).CurrentQuests...)
	res, err := svc.UpgradeTracker(ctx, u.ID, tr.ID)
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if !res.Upgraded {
		t.Fatalf("expected upgrade at streak 6")
	}
	// mean XP 10 + streak bonus 12, no penalties, empty completion log.
	if res.NewDifficulty != 22 {
		t.Fatalf("difficulty=%.1f, want 22", res.NewDifficulty)
	}
	if res.RankAdvanced {
		t.Fatalf("rank escalated below the difficulty bar")
	}

	tr2 := getTrackerT(t, svc, tr.ID)
	if tr2.Daycount != 0 || tr2.Streak != 6 {
		t.Fatalf("daycount=%d streak=%d, want 0/6", tr2.Daycount, tr2.Streak)
	}
	if len(tr2.QuestCompletion) != 0 {
		t.Fatalf("completion log not cleared")
	}
	if len(tr2.CurrentQuests) != 2 || len(tr2.RemainingQuests) != 2 {
		t.Fatalf("quest sets current=%d remaining=%d, want 2/2", len(tr2.CurrentQuests), len(tr2.RemainingQuests))
	}
	for _, old := range oldQuests {
		for _, now := range tr2.CurrentQuests {
			if old == now {
				t.Fatalf("old quest %s survived the upgrade", old)
			}
		}
	}

	quests, err := svc.QuestRepo().GetMany(ctx, tr2.CurrentQuests)
	if err != nil {
		t.Fatalf("load new quests: %v", err)
	}
	for _, q := range quests {
		if q.XP != 22 {
			t.Fatalf("new quest xp=%d, want 22", q.XP)
		}
	}
}

func TestUpgradeEscalatesRankAndCapsEnvelope(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	u, tr := joinNewMission(t, svc, gen, 2, 2)

	// Full completion log plus a long streak pushes difficulty past the
	// escalation bar: 10 + 6*2 + 100*0.5 = 72.
	tr2 := getTrackerT(t, svc, tr.ID)
	tr2.Streak = 6
	tr2.QuestCompletion = map[string][]string{
		"2026-04-01": {tr2.CurrentQuests[0], tr2.CurrentQuests[1]},
		"2026-04-02": {tr2.CurrentQuests[0], tr2.CurrentQuests[1]},
	}
	if err := svc.TrackerRepo().Update(ctx, tr2); err != nil {
		t.Fatalf("seed tracker: %v", err)
	}

	gen.quests = []QuestPlan{
		{Title: "Hill sprints", Stat: StatEndurance, XP: 50},
		{Title: "Heavy squats", Stat: StatStrength, XP: 50},
	}
	res, err := svc.UpgradeTracker(ctx, u.ID, tr.ID)
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if !res.RankAdvanced || res.Rank != RankD {
		t.Fatalf("rank=%q advanced=%v, want D/true", res.Rank, res.RankAdvanced)
	}
	if res.RewardXP != 150 || res.RewardCoins != 50 {
		t.Fatalf("reward xp=%d coins=%d, want 150/50", res.RewardXP, res.RewardCoins)
	}

	tr3 := getTrackerT(t, svc, tr.ID)
	if tr3.Rank != string(RankD) || tr3.Reward.Special != string(SpecialCommon) {
		t.Fatalf("tracker rank=%q special=%q, want D/common", tr3.Rank, tr3.Reward.Special)
	}
	if tr3.FailPenalty.Coins != 25 || tr3.FailPenalty.Stats != 4 {
		t.Fatalf("fail penalty=%+v, want coins 25 stats 4", tr3.FailPenalty)
	}
	if tr3.SkipPenalty.Coins != 12 || tr3.SkipPenalty.Stats != 2 {
		t.Fatalf("skip penalty=%+v, want coins 12 stats 2", tr3.SkipPenalty)
	}

	// Escalation steps saturate at the schema caps, never beyond.
	if capInt(RewardXPMax+escalateRewardXPStep, RewardXPMax) != RewardXPMax {
		t.Fatalf("reward cap not enforced")
	}
}

func TestUpgradeGeneratorFailureLeavesTrackerUntouched(t *testing.T) {
	gen := &stubGen{}
	svc, cleanup := newTestService(t, gen)
	defer cleanup()
	ctx := context.Background()

	u, tr := joinNewMission(t, svc, gen, 2, 5)
	setStreak(t, svc, tr.ID, 6)
	before := getTrackerT(t, svc, tr.ID)

	gen.regenErr = errors.New("model offline")
	var extErr ExternalServiceError
	if _, err := svc.UpgradeTracker(ctx, u.ID, tr.ID); !errors.As(err, &extErr) {
		t.Fatalf("upgrade err=%v, want ExternalServiceError", err)
	}

	// A wrong-sized batch is rejected before any write too.
	gen.regenErr = nil
	gen.quests = []QuestPlan{{Title: "Only one", Stat: StatEndurance, XP: 20}}
	var valErr ValidationError
	if _, err := svc.UpgradeTracker(ctx, u.ID, tr.ID); !errors.As(err, &valErr) {
		t.Fatalf("upgrade err=%v, want ValidationError", err)
	}

	after := getTrackerT(t, svc, tr.ID)
	if after.Version != before.Version {
		t.Fatalf("tracker written despite failed upgrade")
	}
	if len(after.CurrentQuests) != 2 || after.CurrentQuests[0] != before.CurrentQuests[0] {
		t.Fatalf("quests changed despite failed upgrade")
	}
}

func TestCheckMissionPlanBounds(t *testing.T) {
	if err := CheckMissionPlan(testPlan(2)); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(p *MissionPlan)
	}{
		{"no title", func(p *MissionPlan) { p.Title = "" }},
		{"no quests", func(p *MissionPlan) { p.Quests = nil }},
		{"too many quests", func(p *MissionPlan) { p.Quests = testPlan(4).Quests; p.Quests = append(p.Quests, QuestPlan{Title: "x", Stat: StatEndurance, XP: 1}) }},
		{"quest xp high", func(p *MissionPlan) { p.Quests[0].XP = QuestXPMax + 1 }},
		{"quest stat unknown", func(p *MissionPlan) { p.Quests[0].Stat = "luck" }},
		{"reward xp low", func(p *MissionPlan) { p.RewardXP = 49 }},
		{"reward coins high", func(p *MissionPlan) { p.RewardCoins = RewardCoinsMax + 1 }},
		{"special unknown", func(p *MissionPlan) { p.Special = "legendary" }},
		{"fail coins low", func(p *MissionPlan) { p.Penalty.FailCoins = 9 }},
		{"fail stats high", func(p *MissionPlan) { p.Penalty.FailStats = FailStatsMax + 1 }},
		{"skip coins low", func(p *MissionPlan) { p.Penalty.SkipCoins = 4 }},
		{"skip stats high", func(p *MissionPlan) { p.Penalty.SkipStats = SkipStatsMax + 1 }},
		{"rank unknown", func(p *MissionPlan) { p.Rank = "F" }},
	}
	for _, c := range cases {
		p := testPlan(2)
		c.mutate(p)
		if err := CheckMissionPlan(p); err == nil {
			t.Fatalf("%s: plan accepted, want rejection", c.name)
		}
	}
}
