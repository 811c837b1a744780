// Package genai is the content-generator boundary: everything a
// generator returns is schema-validated before any domain object is
// built, so unvalidated output can never reach persistence.
package genai

import (
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"hunterquest/internal/engine"
)

//go:embed schemas/mission.schema.json
var missionSchemaSrc string

//go:embed schemas/quests.schema.json
var questsSchemaSrc string

var (
	missionSchema = jsonschema.MustCompileString("mission.schema.json", missionSchemaSrc)
	questsSchema  = jsonschema.MustCompileString("quests.schema.json", questsSchemaSrc)
)

type questWire struct {
	Title        string `json:"title"`
	StatAffected string `json:"statAffected"`
	XP           int    `json:"xp"`
}

type penaltyTierWire struct {
	Coins int `json:"coins"`
	Stats int `json:"stats"`
}

type missionWire struct {
	Title              string      `json:"title"`
	RefinedDescription string      `json:"refinedDescription"`
	Quests             []questWire `json:"quests"`
	Reward             struct {
		XP            int     `json:"xp"`
		Coins         int     `json:"coins"`
		SpecialReward *string `json:"specialReward"`
	} `json:"reward"`
	Penalty struct {
		MissionFail penaltyTierWire `json:"missionFail"`
		Skip        penaltyTierWire `json:"skip"`
	} `json:"penalty"`
	Rank string `json:"rank"`
}

// DecodeMission validates raw generator output against the mission
// schema and decodes it into a plan. Any violation is a hard failure.
func DecodeMission(raw []byte) (*engine.MissionPlan, error) {
	if err := validate(missionSchema, raw); err != nil {
		return nil, err
	}
	var w missionWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, engine.ValidationError{Field: "mission", Reason: err.Error()}
	}

	plan := &engine.MissionPlan{
		Title:       w.Title,
		Description: w.RefinedDescription,
		Quests:      questPlans(w.Quests),
		RewardXP:    w.Reward.XP,
		RewardCoins: w.Reward.Coins,
		Penalty: engine.PenaltyPlan{
			FailCoins: w.Penalty.MissionFail.Coins,
			FailStats: w.Penalty.MissionFail.Stats,
			SkipCoins: w.Penalty.Skip.Coins,
			SkipStats: w.Penalty.Skip.Stats,
		},
		Rank: engine.Rank(w.Rank),
	}
	if w.Reward.SpecialReward != nil {
		plan.Special = engine.SpecialReward(*w.Reward.SpecialReward)
	}
	return plan, nil
}

// DecodeQuests validates and decodes a regenerated quest batch.
func DecodeQuests(raw []byte) ([]engine.QuestPlan, error) {
	if err := validate(questsSchema, raw); err != nil {
		return nil, err
	}
	var w []questWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, engine.ValidationError{Field: "quests", Reason: err.Error()}
	}
	return questPlans(w), nil
}

func validate(schema *jsonschema.Schema, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return engine.ValidationError{Field: "generator output", Reason: "not valid JSON: " + err.Error()}
	}
	if err := schema.Validate(doc); err != nil {
		return engine.ValidationError{Field: "generator output", Reason: err.Error()}
	}
	return nil
}

func questPlans(wire []questWire) []engine.QuestPlan {
	out := make([]engine.QuestPlan, 0, len(wire))
	for _, q := range wire {
		out = append(out, engine.QuestPlan{Title: q.Title, Stat: engine.Stat(q.StatAffected), XP: q.XP})
	}
	return out
}
