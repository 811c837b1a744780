package engine

import "math"

// Table is a leveling curve: XP required to clear each level.
// Thresholds follow base * exponent^(level-1), rounded up so floating
// point never makes a level cheaper than intended. Exponent must be
// above 1 or the curve stops increasing.
type Table struct {
	Base     float64
	Exponent float64
	MaxLevel int
}

var (
	// HunterLevels drives hunter (global) leveling. Threshold(1) = 40.
	HunterLevels = Table{Base: 40, Exponent: 1.2, MaxLevel: 100}

	// StatLevels drives per-stat leveling on a gentler curve.
	StatLevels = Table{Base: 25, Exponent: 1.15, MaxLevel: 100}
)

// Threshold returns the XP needed to advance past the given level.
// The second return is false at or beyond MaxLevel: growth saturates
// there, it is a documented boundary rather than an error.
func (t Table) Threshold(level int) (int, bool) {
	if level < 1 || level >= t.MaxLevel {
		return 0, false
	}
	req := t.Base * math.Pow(t.Exponent, float64(level-1))
	return int(math.Ceil(req)), true
}
