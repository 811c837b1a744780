// Package tuning loads optional YAML overrides for the progression
// curves. Absent file or absent fields fall back to the built-in
// defaults, so a stock install needs no tuning file at all.
package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hunterquest/internal/engine"
)

type Curve struct {
	Base     float64 `yaml:"base"`
	Exponent float64 `yaml:"exponent"`
	MaxLevel int     `yaml:"max_level"`
}

type RankStep struct {
	Rank  string  `yaml:"rank"`
	Score float64 `yaml:"score"`
}

type Tuning struct {
	HunterCurve Curve      `yaml:"hunter_curve"`
	StatCurve   Curve      `yaml:"stat_curve"`
	Ranks       []RankStep `yaml:"ranks"`
}

func defaults() Tuning {
	t := Tuning{
		HunterCurve: Curve{
			Base:     engine.HunterLevels.Base,
			Exponent: engine.HunterLevels.Exponent,
			MaxLevel: engine.HunterLevels.MaxLevel,
		},
		StatCurve: Curve{
			Base:     engine.StatLevels.Base,
			Exponent: engine.StatLevels.Exponent,
			MaxLevel: engine.StatLevels.MaxLevel,
		},
	}
	for _, rt := range engine.DefaultRankThresholds {
		t.Ranks = append(t.Ranks, RankStep{Rank: string(rt.Rank), Score: rt.Score})
	}
	return t
}

// Load reads the tuning file at path. An empty path returns defaults.
func Load(path string) (Tuning, error) {
	t := defaults()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t Tuning) validate() error {
	for _, c := range []Curve{t.HunterCurve, t.StatCurve} {
		if c.Base <= 0 {
			return fmt.Errorf("tuning: curve base must be positive")
		}
		if c.Exponent <= 1 {
			return fmt.Errorf("tuning: curve exponent must be above 1")
		}
		if c.MaxLevel < 2 {
			return fmt.Errorf("tuning: max_level must be at least 2")
		}
	}
	prev := -1.0
	for _, r := range t.Ranks {
		if _, ok := engine.ParseRank(r.Rank); !ok {
			return fmt.Errorf("tuning: unknown rank %q", r.Rank)
		}
		if r.Score < prev {
			return fmt.Errorf("tuning: rank scores must be non-decreasing")
		}
		prev = r.Score
	}
	return nil
}

// Ledger builds the leveling curves for the engine.
func (t Tuning) Ledger() engine.Ledger {
	return engine.Ledger{
		Hunter: engine.Table{Base: t.HunterCurve.Base, Exponent: t.HunterCurve.Exponent, MaxLevel: t.HunterCurve.MaxLevel},
		Stats:  engine.Table{Base: t.StatCurve.Base, Exponent: t.StatCurve.Exponent, MaxLevel: t.StatCurve.MaxLevel},
	}
}

// RankThresholds builds the ascension ladder for the engine.
func (t Tuning) RankThresholds() []engine.RankThreshold {
	out := make([]engine.RankThreshold, 0, len(t.Ranks))
	for _, r := range t.Ranks {
		rank, _ := engine.ParseRank(r.Rank)
		out = append(out, engine.RankThreshold{Rank: rank, Score: r.Score})
	}
	return out
}
