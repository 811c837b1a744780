package engine

import (
	"context"
	"database/sql"

	"hunterquest/internal/storage"
)

// CompleteResult is the client-facing snapshot after a quest completion.
type CompleteResult struct {
	QuestID          string
	Stat             Stat
	StatXPAwarded    int
	StatLevel        int
	Level            int
	XP               int
	Coins            int
	Streak           int
	Daycount         int
	DayCompleted     bool
	RewardXP         int
	RewardCoins      int
	MissionCompleted bool
}

// CompleteQuest marks one of today's remaining quests done: the quest
// leaves the remaining set, lands in today's completion log, and its
// stat XP is credited. Completing the last remaining quest closes the
// day (streak/daycount bump) and pays the day reward: a quarter of the
// mission reward on ordinary days, the full reward on the final day,
// which also marks the mission completed on the hunter.
// Tracker and hunter are written as one atomic unit.
func (s *Service) CompleteQuest(ctx context.Context, userID, trackerID, questID string) (*CompleteResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var res *CompleteResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := storage.NewUserRepo(tx)
		trackers := storage.NewTrackerRepo(tx)
		quests := storage.NewQuestRepo(tx)

		t, err := s.getActiveTracker(ctx, trackers, trackerID)
		if err != nil {
			return err
		}
		if t.UserID != userID {
			return NotFoundError{Kind: "tracker", ID: trackerID}
		}
		if !t.HasRemaining(questID) {
			// Double submit or stale client state.
			return NotFoundError{Kind: "quest in today's remaining set", ID: questID}
		}
		q, err := quests.Get(ctx, questID)
		if err != nil {
			return err
		}
		if q == nil {
			return NotFoundError{Kind: "quest", ID: questID}
		}
		u, err := s.getUser(ctx, users, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		remaining := make([]string, 0, len(t.RemainingQuests)-1)
		for _, id := range t.RemainingQuests {
			if id != questID {
				remaining = append(remaining, id)
			}
		}
		t.RemainingQuests = remaining
		if t.QuestCompletion == nil {
			t.QuestCompletion = map[string][]string{}
		}
		day := DayKey(now)
		t.QuestCompletion[day] = append(t.QuestCompletion[day], questID)
		t.LastUpdated = now

		stat := Stat(q.Stat)
		if !stat.IsValid() {
			stat = DefaultStat
		}
		s.ledger.ApplyStatXP(u, stat, q.XP)

		res = &CompleteResult{
			QuestID:       questID,
			Stat:          stat,
			StatXPAwarded: q.XP,
		}

		if len(t.RemainingQuests) == 0 {
			t.Streak++
			t.Daycount++
			t.LastCompleted = &now
			res.DayCompleted = true

			rewardXP := t.Reward.XP / 4
			rewardCoins := t.Reward.Coins / 4
			if t.Daycount >= t.Duration {
				// Final day pays in full.
				rewardXP = t.Reward.XP
				rewardCoins = t.Reward.Coins
				t.Status = storage.TrackerCompleted
				if !u.HasCompletedTracker(t.ID) {
					u.CompletedTrackers = append(u.CompletedTrackers, t.ID)
				}
				res.MissionCompleted = true
			}
			s.ledger.ApplyXP(u, rewardXP)
			s.ledger.ApplyCoins(u, rewardCoins)
			res.RewardXP = rewardXP
			res.RewardCoins = rewardCoins
		}

		if err := trackers.Update(ctx, t); err != nil {
			return err
		}
		if err := users.Update(ctx, u); err != nil {
			return err
		}

		res.StatLevel = u.Stats[string(stat)].Level
		res.Level = u.Level
		res.XP = u.XP
		res.Coins = u.Coins
		res.Streak = t.Streak
		res.Daycount = t.Daycount
		return nil
	})
	if err != nil {
		return nil, domainErr("quest complete", err)
	}
	return res, nil
}
