package engine

import (
	"testing"
	"time"

	"hunterquest/internal/storage"
)

func TestThresholdCurve(t *testing.T) {
	if got, ok := HunterLevels.Threshold(1); !ok || got != 40 {
		t.Fatalf("Threshold(1)=%d,%v, want 40,true", got, ok)
	}
	if _, ok := HunterLevels.Threshold(0); ok {
		t.Fatalf("Threshold(0) must be out of range")
	}
	if _, ok := HunterLevels.Threshold(HunterLevels.MaxLevel); ok {
		t.Fatalf("Threshold(MaxLevel) must saturate")
	}

	prev := 0
	for lvl := 1; lvl < HunterLevels.MaxLevel; lvl++ {
		need, ok := HunterLevels.Threshold(lvl)
		if !ok {
			t.Fatalf("Threshold(%d) unexpectedly saturated", lvl)
		}
		if need <= prev {
			t.Fatalf("Threshold(%d)=%d not above Threshold(%d)=%d", lvl, need, lvl-1, prev)
		}
		prev = need
	}
}

func TestApplyXPCascades(t *testing.T) {
	need1, _ := HunterLevels.Threshold(1)
	need2, _ := HunterLevels.Threshold(2)

	u := &storage.User{Level: 1}
	DefaultLedger.ApplyXP(u, need1+need2+5)
	if u.Level != 3 || u.XP != 5 {
		t.Fatalf("after cascade level=%d xp=%d, want 3/5", u.Level, u.XP)
	}

	// Negative delta unwinds through the previous level's threshold.
	DefaultLedger.ApplyXP(u, -10)
	if u.Level != 2 || u.XP != need2-5 {
		t.Fatalf("after level-down level=%d xp=%d, want 2/%d", u.Level, u.XP, need2-5)
	}

	// XP and level both floor: penalties cannot push below level 1.
	DefaultLedger.ApplyXP(u, -10000)
	if u.Level != 1 || u.XP != 0 {
		t.Fatalf("floor level=%d xp=%d, want 1/0", u.Level, u.XP)
	}

	// A 95 XP grant from scratch clears the first two thresholds.
	fresh := &storage.User{Level: 1}
	DefaultLedger.ApplyXP(fresh, 95)
	if fresh.Level != 3 || fresh.XP != 95-need1-need2 {
		t.Fatalf("after 95 XP level=%d xp=%d, want 3/%d", fresh.Level, fresh.XP, 95-need1-need2)
	}
}

func TestApplyXPSaturatesAtMaxLevel(t *testing.T) {
	ledger := Ledger{Hunter: Table{Base: 10, Exponent: 1.5, MaxLevel: 3}, Stats: StatLevels}

	u := &storage.User{Level: 1}
	ledger.ApplyXP(u, 1000)
	if u.Level != 3 {
		t.Fatalf("level=%d, want saturation at 3", u.Level)
	}
	// Beyond the cap XP keeps accumulating without further level-ups.
	before := u.XP
	ledger.ApplyXP(u, 50)
	if u.Level != 3 || u.XP != before+50 {
		t.Fatalf("post-cap level=%d xp=%d, want 3/%d", u.Level, u.XP, before+50)
	}
}

func TestApplyStatXP(t *testing.T) {
	need1, _ := StatLevels.Threshold(1)

	u := &storage.User{}
	DefaultLedger.ApplyStatXP(u, StatStrength, need1+3)
	sp := u.Stats[string(StatStrength)]
	if sp.Level != 2 || sp.Value != 3 {
		t.Fatalf("strength level=%d value=%d, want 2/3", sp.Level, sp.Value)
	}

	DefaultLedger.ApplyStatXP(u, StatStrength, -5)
	sp = u.Stats[string(StatStrength)]
	if sp.Level != 1 || sp.Value != need1-2 {
		t.Fatalf("strength after penalty level=%d value=%d, want 1/%d", sp.Level, sp.Value, need1-2)
	}

	// Other stats stay untouched.
	if sp := u.Stats[string(StatAgility)]; sp.Value != 0 {
		t.Fatalf("agility value=%d, want 0", sp.Value)
	}
}

func TestApplyCoinsFloorsAtZero(t *testing.T) {
	u := &storage.User{Coins: 10}
	DefaultLedger.ApplyCoins(u, -25)
	if u.Coins != 0 {
		t.Fatalf("coins=%d, want 0 floor", u.Coins)
	}
	DefaultLedger.ApplyCoins(u, 7)
	if u.Coins != 7 {
		t.Fatalf("coins=%d, want 7", u.Coins)
	}
}

func TestDayPolicy(t *testing.T) {
	// 23:59 -> 00:01 is a day change under the UTC calendar policy.
	lateNight := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	justAfter := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	if DayKey(lateNight) == DayKey(justAfter) {
		t.Fatalf("midnight crossing produced the same day key")
	}

	cases := []struct {
		days   int
		missed int
		want   PenaltyType
	}{
		{0, 0, PenaltyNone},
		{1, 0, PenaltyNone},
		{2, 1, PenaltySkip},
		{7, 6, PenaltySkip},
		{8, 7, PenaltyMissionFail},
		{30, 29, PenaltyMissionFail},
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, c := range cases {
		now := base.Add(time.Duration(c.days) * 24 * time.Hour)
		if got := MissedDays(base, now); got != c.missed {
			t.Fatalf("MissedDays(+%dd)=%d, want %d", c.days, got, c.missed)
		}
		if got := ClassifyRefresh(base, now); got != c.want {
			t.Fatalf("ClassifyRefresh(+%dd)=%q, want %q", c.days, got, c.want)
		}
	}
}
