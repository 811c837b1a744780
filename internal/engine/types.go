package engine

import "strings"

type Stat string

const (
	StatStrength     Stat = "strength"
	StatIntelligence Stat = "intelligence"
	StatAgility      Stat = "agility"
	StatEndurance    Stat = "endurance"
	StatCharisma     Stat = "charisma"
)

// AllStats lists every stat in display order.
var AllStats = []Stat{StatStrength, StatIntelligence, StatAgility, StatEndurance, StatCharisma}

func (s Stat) IsValid() bool {
	switch s {
	case StatStrength, StatIntelligence, StatAgility, StatEndurance, StatCharisma:
		return true
	default:
		return false
	}
}

// DefaultStat is used when generator or user input carries an unknown stat.
const DefaultStat Stat = StatEndurance

// ParseStat parses user input to a Stat.
// Supported: strength/str, intelligence/int, agility/agi, endurance/end, charisma/cha.
func ParseStat(input string) Stat {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "strength", "str":
		return StatStrength
	case "intelligence", "int":
		return StatIntelligence
	case "agility", "agi":
		return StatAgility
	case "endurance", "end":
		return StatEndurance
	case "charisma", "cha":
		return StatCharisma
	default:
		return DefaultStat
	}
}

type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

// RankOrder lists ranks lowest to highest.
var RankOrder = []Rank{RankE, RankD, RankC, RankB, RankA, RankS}

func (r Rank) IsValid() bool {
	return r.Index() >= 0
}

// Index returns the rank's position in RankOrder, or -1 for unknown ranks.
func (r Rank) Index() int {
	for i, o := range RankOrder {
		if o == r {
			return i
		}
	}
	return -1
}

// Next returns the next rank up, saturating at S.
func (r Rank) Next() Rank {
	i := r.Index()
	if i < 0 || i >= len(RankOrder)-1 {
		return RankS
	}
	return RankOrder[i+1]
}

func ParseRank(input string) (Rank, bool) {
	r := Rank(strings.ToUpper(strings.TrimSpace(input)))
	return r, r.IsValid()
}

// SpecialReward tiers a mission can carry on top of XP/coins.
type SpecialReward string

const (
	SpecialNone   SpecialReward = ""
	SpecialCommon SpecialReward = "common"
	SpecialRare   SpecialReward = "rare"
	SpecialEpic   SpecialReward = "epic"
)

func (s SpecialReward) IsValid() bool {
	switch s {
	case SpecialNone, SpecialCommon, SpecialRare, SpecialEpic:
		return true
	default:
		return false
	}
}

// SideDifficulty grades a standalone sidequest.
type SideDifficulty string

const (
	SideTrivial SideDifficulty = "trivial"
	SideEasy    SideDifficulty = "easy"
	SideMedium  SideDifficulty = "medium"
	SideHard    SideDifficulty = "hard"
)

func (d SideDifficulty) IsValid() bool {
	switch d {
	case SideTrivial, SideEasy, SideMedium, SideHard:
		return true
	default:
		return false
	}
}

// Quest XP bounds shared by generation, upgrade, and validation.
const (
	QuestXPMin = 1
	QuestXPMax = 50

	// Quests per mission generation batch.
	QuestCountMin = 1
	QuestCountMax = 4
)

// Reward and penalty caps for tracker escalation. These match the
// generator schema maxima, so repeated upgrades approach but never
// exceed what generation itself could emit.
const (
	RewardXPMax    = 500
	RewardCoinsMax = 100

	FailCoinsMax = 50
	FailStatsMax = 5
	SkipCoinsMax = 20
	SkipStatsMax = 2
)
