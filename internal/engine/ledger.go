package engine

import "hunterquest/internal/storage"

// Ledger applies XP/coin/stat deltas to a user and resolves cascading
// level changes in place. It is pure arithmetic: callers persist the
// mutated user and report the outcome.
type Ledger struct {
	Hunter Table
	Stats  Table
}

// DefaultLedger uses the standard leveling curves.
var DefaultLedger = Ledger{Hunter: HunterLevels, Stats: StatLevels}

// ApplyXP adds delta to the user's XP and rolls excess into level-ups,
// or unwinds levels on a negative delta. After the call
// 0 <= XP < Threshold(Level) holds (unless the level is saturated),
// and Level never drops below 1.
func (l Ledger) ApplyXP(u *storage.User, delta int) {
	if u.Level < 1 {
		u.Level = 1
	}
	u.XP += delta
	if delta >= 0 {
		for {
			need, ok := l.Hunter.Threshold(u.Level)
			if !ok || u.XP < need {
				break
			}
			u.XP -= need
			u.Level++
		}
		return
	}
	for u.XP < 0 && u.Level > 1 {
		u.Level--
		if need, ok := l.Hunter.Threshold(u.Level); ok {
			u.XP += need
		}
	}
	if u.XP < 0 {
		u.XP = 0
	}
}

// ApplyStatXP runs the same cascade against one stat's value/level pair
// using the stat curve.
func (l Ledger) ApplyStatXP(u *storage.User, stat Stat, delta int) {
	if u.Stats == nil {
		u.Stats = map[string]storage.StatProgress{}
	}
	sp := u.Stats[string(stat)]
	if sp.Level < 1 {
		sp.Level = 1
	}
	sp.Value += delta
	if delta >= 0 {
		for {
			need, ok := l.Stats.Threshold(sp.Level)
			if !ok || sp.Value < need {
				break
			}
			sp.Value -= need
			sp.Level++
		}
	} else {
		for sp.Value < 0 && sp.Level > 1 {
			sp.Level--
			if need, ok := l.Stats.Threshold(sp.Level); ok {
				sp.Value += need
			}
		}
		if sp.Value < 0 {
			sp.Value = 0
		}
	}
	u.Stats[string(stat)] = sp
}

// ApplyCoins adjusts the coin balance, flooring at zero. A penalty
// larger than the balance caps at zero: hunters cannot go into debt.
func (l Ledger) ApplyCoins(u *storage.User, delta int) {
	u.Coins += delta
	if u.Coins < 0 {
		u.Coins = 0
	}
}
