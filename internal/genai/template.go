package genai

import (
	"context"
	"fmt"
	"strings"

	"hunterquest/internal/engine"
)

// Template is the offline generator used when no endpoint is
// configured. Deterministic: the same goal and duration always produce
// the same mission, scaled so longer missions pay more.
type Template struct{}

var templateStats = []engine.Stat{
	engine.StatEndurance,
	engine.StatStrength,
	engine.StatIntelligence,
}

func (Template) GenerateMission(ctx context.Context, goal string, durationDays int) (*engine.MissionPlan, error) {
	goal = strings.TrimSpace(goal)
	title := goal
	if len(title) > 60 {
		title = title[:60]
	}

	questXP := clamp(8+durationDays/2, 1, 50)
	quests := make([]engine.QuestPlan, 0, len(templateStats))
	for i, stat := range templateStats {
		quests = append(quests, engine.QuestPlan{
			Title: fmt.Sprintf("Daily step %d: %s", i+1, goal),
			Stat:  stat,
			XP:    questXP,
		})
	}

	return &engine.MissionPlan{
		Title:       title,
		Description: fmt.Sprintf("A %d-day mission toward: %s", durationDays, goal),
		Quests:      quests,
		RewardXP:    clamp(80+durationDays*10, 50, 500),
		RewardCoins: clamp(20+durationDays*2, 10, 100),
		Special:     templateSpecial(durationDays),
		Penalty: engine.PenaltyPlan{
			FailCoins: 15,
			FailStats: 2,
			SkipCoins: 8,
			SkipStats: 1,
		},
		Rank: templateRank(durationDays),
	}, nil
}

// RegenerateQuests hardens the existing batch: same count, each quest
// retargeted to the requested XP.
func (Template) RegenerateQuests(ctx context.Context, req engine.UpgradeRequest) ([]engine.QuestPlan, error) {
	out := make([]engine.QuestPlan, 0, req.QuestCount)
	for i := 0; i < req.QuestCount; i++ {
		plan := engine.QuestPlan{
			Title: fmt.Sprintf("Intensified step %d", i+1),
			Stat:  templateStats[i%len(templateStats)],
			XP:    clamp(req.TargetXP, 1, 50),
		}
		if i < len(req.Quests) {
			plan.Title = "Push further: " + req.Quests[i].Title
			plan.Stat = req.Quests[i].Stat
		}
		out = append(out, plan)
	}
	return out, nil
}

func templateRank(durationDays int) engine.Rank {
	switch {
	case durationDays >= 30:
		return engine.RankA
	case durationDays >= 21:
		return engine.RankB
	case durationDays >= 14:
		return engine.RankC
	case durationDays >= 7:
		return engine.RankD
	default:
		return engine.RankE
	}
}

func templateSpecial(durationDays int) engine.SpecialReward {
	switch {
	case durationDays >= 30:
		return engine.SpecialRare
	case durationDays >= 14:
		return engine.SpecialCommon
	default:
		return engine.SpecialNone
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
