package engine

import (
	"context"
	"database/sql"
	"math"

	"github.com/google/uuid"

	"hunterquest/internal/storage"
)

// Streak required before a tracker may upgrade.
const upgradeStreakMin = 5

// Difficulty above which an upgrade also escalates rank and rewards.
const escalateDifficultyAbove = 40

// Escalation step sizes. All capped (types.go), so repeated upgrades
// approach the caps asymptotically and never exceed them.
const (
	escalateRewardXPStep    = 50
	escalateRewardCoinsStep = 10
	escalateFailCoinsStep   = 5
	escalateFailStatsStep   = 1
	escalateSkipCoinsStep   = 2
	escalateSkipStatsStep   = 1
)

// UpgradeResult reports an upgrade attempt. Upgraded=false with a nil
// error means the streak gate was not met: upgrading is opportunistic,
// not mandatory.
type UpgradeResult struct {
	TrackerID     string
	Upgraded      bool
	NewDifficulty float64
	TargetXP      int
	RankAdvanced  bool
	Rank          Rank
	RewardXP      int
	RewardCoins   int
}

// UpgradeTracker recomputes the tracker's difficulty from its history
// and swaps in harder generator-produced quests. The completion log is
// cleared and daycount reset, so the upgraded mission restarts its
// duration with the streak intact. A generator failure aborts with no
// tracker mutation.
func (s *Service) UpgradeTracker(ctx context.Context, userID, trackerID string) (*UpgradeResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	t, err := s.getActiveTracker(ctx, s.trackers, trackerID)
	if err != nil {
		return nil, domainErr("tracker load", err)
	}
	if t.UserID != userID {
		return nil, NotFoundError{Kind: "tracker", ID: trackerID}
	}
	if t.Streak < upgradeStreakMin {
		return &UpgradeResult{TrackerID: trackerID, Rank: Rank(t.Rank)}, nil
	}

	current, err := s.quests.GetMany(ctx, t.CurrentQuests)
	if err != nil {
		return nil, domainErr("quest load", err)
	}
	if len(current) == 0 {
		return nil, ValidationError{Field: "tracker", Reason: "has no quests to upgrade"}
	}

	difficulty := upgradeDifficulty(t, current)
	targetXP := clampQuestXP(int(math.Round(difficulty)))

	// The only unbounded-latency step. Runs before any write: a
	// timeout or schema rejection leaves the tracker untouched.
	req := UpgradeRequest{
		MissionTitle: t.Title,
		Quests:       questPlansOf(current),
		TargetXP:     targetXP,
		QuestCount:   len(current),
	}
	plans, err := s.gen.RegenerateQuests(ctx, req)
	if err != nil {
		return nil, domainGenErr(err)
	}
	if len(plans) != len(current) {
		return nil, ValidationError{Field: "quests", Reason: "generator changed the quest count"}
	}
	if err := CheckQuestPlans(plans); err != nil {
		return nil, err
	}

	res := &UpgradeResult{
		TrackerID:     trackerID,
		Upgraded:      true,
		NewDifficulty: difficulty,
		TargetXP:      targetXP,
		Rank:          Rank(t.Rank),
	}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		trackers := storage.NewTrackerRepo(tx)
		quests := storage.NewQuestRepo(tx)

		ids := make([]string, 0, len(plans))
		for _, p := range plans {
			q := storage.Quest{ID: uuid.NewString(), Title: p.Title, Stat: string(p.Stat), XP: clampQuestXP(p.XP)}
			if err := quests.Insert(ctx, q); err != nil {
				return err
			}
			ids = append(ids, q.ID)
		}

		t.CurrentQuests = ids
		t.RemainingQuests = append([]string(nil), ids...)
		t.QuestCompletion = map[string][]string{}
		t.Daycount = 0
		t.LastUpdated = s.now().UTC()

		if difficulty > escalateDifficultyAbove && Rank(t.Rank) != RankS {
			next := Rank(t.Rank).Next()
			t.Rank = string(next)
			t.Reward.XP = capInt(t.Reward.XP+escalateRewardXPStep, RewardXPMax)
			t.Reward.Coins = capInt(t.Reward.Coins+escalateRewardCoinsStep, RewardCoinsMax)
			t.Reward.Special = string(specialRewardForRank(next))
			t.FailPenalty.Coins = capInt(t.FailPenalty.Coins+escalateFailCoinsStep, FailCoinsMax)
			t.FailPenalty.Stats = capInt(t.FailPenalty.Stats+escalateFailStatsStep, FailStatsMax)
			t.SkipPenalty.Coins = capInt(t.SkipPenalty.Coins+escalateSkipCoinsStep, SkipCoinsMax)
			t.SkipPenalty.Stats = capInt(t.SkipPenalty.Stats+escalateSkipStatsStep, SkipStatsMax)
			res.RankAdvanced = true
			res.Rank = next
		}
		res.RewardXP = t.Reward.XP
		res.RewardCoins = t.Reward.Coins

		return trackers.Update(ctx, t)
	})
	if err != nil {
		return nil, domainErr("tracker upgrade", err)
	}
	return res, nil
}

// upgradeDifficulty scores how hard the next quest batch should be:
// current mean quest XP, pushed up by the streak, pulled down by
// penalties, nudged by the completion rate over the mission's span.
func upgradeDifficulty(t *storage.Tracker, current []storage.Quest) float64 {
	base := 0.0
	for _, q := range current {
		base += float64(q.XP)
	}
	base /= float64(len(current))

	completed := 0
	for _, day := range t.QuestCompletion {
		completed += len(day)
	}
	slots := len(current) * t.Duration
	rate := 0.0
	if slots > 0 {
		rate = float64(completed) / float64(slots) * 100
		if rate > 100 {
			rate = 100
		}
	}

	return base + float64(t.Streak)*2 - float64(len(t.PenaltiesApplied))*5 + rate*0.5
}

func questPlansOf(quests []storage.Quest) []QuestPlan {
	out := make([]QuestPlan, 0, len(quests))
	for _, q := range quests {
		out = append(out, QuestPlan{Title: q.Title, Stat: Stat(q.Stat), XP: q.XP})
	}
	return out
}

func clampQuestXP(xp int) int {
	if xp < QuestXPMin {
		return QuestXPMin
	}
	if xp > QuestXPMax {
		return QuestXPMax
	}
	return xp
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}

func specialRewardForRank(r Rank) SpecialReward {
	switch r {
	case RankS:
		return SpecialEpic
	case RankA, RankB:
		return SpecialRare
	case RankC, RankD:
		return SpecialCommon
	default:
		return SpecialNone
	}
}
