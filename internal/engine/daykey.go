package engine

import "time"

// Day keys use one canonical policy: the UTC calendar date. All daily
// boundaries (completion log, refresh classification) derive from it,
// never from raw durations, so 23:59 -> 00:01 counts as a day change.
const dayKeyLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// MissedDays returns how many whole calendar days (UTC) lie between the
// tracker's last activity and now, minus the one day the hunter is
// still allowed to be working on. Same-day or next-day activity is 0.
func MissedDays(last, now time.Time) int {
	lastDay := last.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	gap := int(today.Sub(lastDay) / (24 * time.Hour))
	if gap <= 1 {
		return 0
	}
	return gap - 1
}

// PenaltyType classifies a daily refresh.
type PenaltyType string

const (
	PenaltyNone        PenaltyType = ""
	PenaltySkip        PenaltyType = "skip"
	PenaltyMissionFail PenaltyType = "mission_fail"
)

// Missed-day windows for refresh classification.
const missionFailAfterDays = 7

// ClassifyRefresh decides which penalty a refresh carries based on
// missed days: 0 means the tracker is current and refresh is a no-op,
// 1-6 is a skip, 7+ abandons the mission.
func ClassifyRefresh(last, now time.Time) PenaltyType {
	switch missed := MissedDays(last, now); {
	case missed == 0:
		return PenaltyNone
	case missed < missionFailAfterDays:
		return PenaltySkip
	default:
		return PenaltyMissionFail
	}
}
