package engine

import "context"

// QuestPlan is one generated quest before persistence.
type QuestPlan struct {
	Title string
	Stat  Stat
	XP    int
}

// PenaltyPlan mirrors the mission penalty envelope.
type PenaltyPlan struct {
	FailCoins int
	FailStats int
	SkipCoins int
	SkipStats int
}

// MissionPlan is a generated mission before persistence. Plans reach
// the engine only after schema validation; CheckMissionPlan is the
// engine's own final gate.
type MissionPlan struct {
	Title       string
	Description string
	Quests      []QuestPlan
	RewardXP    int
	RewardCoins int
	Special     SpecialReward
	Penalty     PenaltyPlan
	Rank        Rank
}

// UpgradeRequest asks the generator for harder replacements of a
// tracker's current quests.
type UpgradeRequest struct {
	MissionTitle string
	Quests       []QuestPlan
	TargetXP     int
	QuestCount   int
}

// ContentGenerator produces mission and quest content. Implementations
// must return fully schema-valid output or an error; the engine never
// persists anything derived from a rejected response.
type ContentGenerator interface {
	GenerateMission(ctx context.Context, goal string, durationDays int) (*MissionPlan, error)
	RegenerateQuests(ctx context.Context, req UpgradeRequest) ([]QuestPlan, error)
}

// CheckQuestPlans validates a generated quest batch.
func CheckQuestPlans(quests []QuestPlan) error {
	if len(quests) < QuestCountMin || len(quests) > QuestCountMax {
		return ValidationError{Field: "quests", Reason: "must contain 1 to 4 quests"}
	}
	for _, q := range quests {
		if q.Title == "" {
			return ValidationError{Field: "quests.title", Reason: "required"}
		}
		if !q.Stat.IsValid() {
			return ValidationError{Field: "quests.stat", Reason: "unknown stat " + string(q.Stat)}
		}
		if q.XP < QuestXPMin || q.XP > QuestXPMax {
			return ValidationError{Field: "quests.xp", Reason: "out of range [1,50]"}
		}
	}
	return nil
}

// CheckMissionPlan validates a full generated mission against the
// generation schema bounds.
func CheckMissionPlan(p *MissionPlan) error {
	if p == nil {
		return ValidationError{Field: "mission", Reason: "missing"}
	}
	if p.Title == "" {
		return ValidationError{Field: "title", Reason: "required"}
	}
	if err := CheckQuestPlans(p.Quests); err != nil {
		return err
	}
	if p.RewardXP < 50 || p.RewardXP > RewardXPMax {
		return ValidationError{Field: "reward.xp", Reason: "out of range [50,500]"}
	}
	if p.RewardCoins < 10 || p.RewardCoins > RewardCoinsMax {
		return ValidationError{Field: "reward.coins", Reason: "out of range [10,100]"}
	}
	if !p.Special.IsValid() {
		return ValidationError{Field: "reward.specialReward", Reason: "unknown tier"}
	}
	if p.Penalty.FailCoins < 10 || p.Penalty.FailCoins > FailCoinsMax {
		return ValidationError{Field: "penalty.missionFail.coins", Reason: "out of range [10,50]"}
	}
	if p.Penalty.FailStats < 1 || p.Penalty.FailStats > FailStatsMax {
		return ValidationError{Field: "penalty.missionFail.stats", Reason: "out of range [1,5]"}
	}
	if p.Penalty.SkipCoins < 5 || p.Penalty.SkipCoins > SkipCoinsMax {
		return ValidationError{Field: "penalty.skip.coins", Reason: "out of range [5,20]"}
	}
	if p.Penalty.SkipStats < 0 || p.Penalty.SkipStats > SkipStatsMax {
		return ValidationError{Field: "penalty.skip.stats", Reason: "out of range [0,2]"}
	}
	if !p.Rank.IsValid() {
		return ValidationError{Field: "rank", Reason: "unknown rank " + string(p.Rank)}
	}
	return nil
}
