package engine

import (
	"context"
	"database/sql"
	"fmt"

	"hunterquest/internal/storage"
)

// RankThreshold is one rung of the ascension ladder.
type RankThreshold struct {
	Rank  Rank
	Score float64
}

// DefaultRankThresholds, lowest to highest. The evaluator takes the
// highest rank whose threshold the hunter score meets.
var DefaultRankThresholds = []RankThreshold{
	{RankE, 0},
	{RankD, 300},
	{RankC, 600},
	{RankB, 1000},
	{RankA, 1500},
	{RankS, 2200},
}

// Hunter score weights.
const (
	weightXP      = 0.3
	weightStats   = 0.3
	weightMission = 0.2
	weightSuccess = 0.1
	weightStreak  = 0.1
)

// AscensionReport is the full breakdown returned on every evaluation,
// whether or not the hunter ascended.
type AscensionReport struct {
	XPScore      float64
	StatScore    float64
	MissionScore float64
	SuccessScore float64
	StreakScore  float64
	HunterScore  float64

	TotalStatLevels   int
	CompletedMissions int
	TotalMissions     int
	SuccessRate       float64
	AvgStreak         float64

	PreviousRank  Rank
	Rank          Rank
	Ascended      bool
	StepsAdvanced int
	RewardXP      int
	RewardCoins   int
	TitleGranted  string
}

// Ascension one-time rewards per rank step advanced.
const (
	ascendRewardXPPerStep    = 400
	ascendRewardCoinsPerStep = 1500
)

// EvaluateAscension recomputes the hunter score from current state and
// promotes the hunter if a higher threshold is met. Rank never moves
// down; recomputing with unchanged inputs is idempotent and grants no
// second reward. The report is returned either way.
func (s *Service) EvaluateAscension(ctx context.Context, userID string) (*AscensionReport, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var report *AscensionReport
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := storage.NewUserRepo(tx)
		trackers := storage.NewTrackerRepo(tx)

		u, err := s.getUser(ctx, users, userID)
		if err != nil {
			return err
		}
		active, err := trackers.ListActiveByUser(ctx, userID)
		if err != nil {
			return err
		}

		report = scoreHunter(u, active, s.ranks)
		if !report.Ascended {
			return nil
		}

		u.Rank = string(report.Rank)
		s.ledger.ApplyXP(u, report.RewardXP)
		s.ledger.ApplyCoins(u, report.RewardCoins)
		title := fmt.Sprintf("%s-Rank Hunter", report.Rank)
		if !u.HasTitle(title) {
			u.Titles = append(u.Titles, title)
			report.TitleGranted = title
		}
		return users.Update(ctx, u)
	})
	if err != nil {
		return nil, domainErr("ascension", err)
	}
	return report, nil
}

// scoreHunter is the pure part: weighted composite score and the rank
// decision against the threshold ladder.
func scoreHunter(u *storage.User, active []storage.Tracker, ranks []RankThreshold) *AscensionReport {
	r := &AscensionReport{PreviousRank: Rank(u.Rank), Rank: Rank(u.Rank)}

	for _, sp := range u.Stats {
		r.TotalStatLevels += sp.Level
	}
	r.CompletedMissions = len(u.CompletedTrackers)
	r.TotalMissions = u.TotalMissions
	if u.TotalMissions > 0 {
		r.SuccessRate = float64(r.CompletedMissions) / float64(u.TotalMissions)
	}
	if len(active) > 0 {
		sum := 0
		for _, t := range active {
			sum += t.Streak
		}
		r.AvgStreak = float64(sum) / float64(len(active))
	}

	r.XPScore = float64(u.XP) * weightXP
	r.StatScore = float64(r.TotalStatLevels) * 10 * weightStats
	r.MissionScore = float64(u.TotalMissions) * 20 * weightMission
	r.SuccessScore = r.SuccessRate * 100 * weightSuccess
	r.StreakScore = r.AvgStreak * 5 * weightStreak
	r.HunterScore = r.XPScore + r.StatScore + r.MissionScore + r.SuccessScore + r.StreakScore

	earned := RankE
	for _, rt := range ranks {
		if r.HunterScore >= rt.Score {
			earned = rt.Rank
		}
	}

	// Rank is monotonically non-decreasing: a formula downgrade is
	// never applied.
	if earned.Index() > Rank(u.Rank).Index() {
		r.Rank = earned
		r.Ascended = true
		r.StepsAdvanced = earned.Index() - Rank(u.Rank).Index()
		r.RewardXP = ascendRewardXPPerStep * r.StepsAdvanced
		r.RewardCoins = ascendRewardCoinsPerStep * r.StepsAdvanced
	}
	return r
}
