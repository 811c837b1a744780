package engine

import (
	"context"
	"database/sql"

	"hunterquest/internal/storage"
)

// RefreshResult reports a daily refresh. Penalty application and
// mission failure are expected domain outcomes, not errors.
type RefreshResult struct {
	TrackerID string
	Penalty   PenaltyType
	Level     int
	XP        int
	Coins     int
	Deleted   bool
}

// DailyRefresh applies the caller-classified penalty and rolls the
// tracker into a fresh day. The engine trusts the classification
// (ClassifyRefresh) and does not re-check "already refreshed today";
// invoking this twice for the same day double-penalizes, upholding
// that contract is the caller's job (see SyncTrackers).
//
//   - none: fresh day, remaining reset, no penalty
//   - skip: skip penalty applied, timestamp logged, tracker survives
//   - mission_fail: fail penalty applied, tracker deleted (terminal)
func (s *Service) DailyRefresh(ctx context.Context, userID, trackerID string, penalty PenaltyType) (*RefreshResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var res *RefreshResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := storage.NewUserRepo(tx)
		trackers := storage.NewTrackerRepo(tx)

		t, err := s.getActiveTracker(ctx, trackers, trackerID)
		if err != nil {
			return err
		}
		if t.UserID != userID {
			return NotFoundError{Kind: "tracker", ID: trackerID}
		}
		u, err := s.getUser(ctx, users, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		res = &RefreshResult{TrackerID: trackerID, Penalty: penalty}

		switch penalty {
		case PenaltyMissionFail:
			// The stats amount is a mission-level penalty, charged
			// against hunter XP directly rather than one named stat.
			s.ledger.ApplyXP(u, -t.FailPenalty.Stats)
			s.ledger.ApplyCoins(u, -t.FailPenalty.Coins)
			if err := users.Update(ctx, u); err != nil {
				return err
			}
			if err := trackers.Delete(ctx, trackerID); err != nil {
				return err
			}
			res.Deleted = true

		case PenaltySkip:
			s.ledger.ApplyXP(u, -t.SkipPenalty.Stats)
			s.ledger.ApplyCoins(u, -t.SkipPenalty.Coins)
			t.PenaltiesApplied = append(t.PenaltiesApplied, now)
			t.RemainingQuests = append([]string(nil), t.CurrentQuests...)
			t.LastUpdated = now
			if err := users.Update(ctx, u); err != nil {
				return err
			}
			if err := trackers.Update(ctx, t); err != nil {
				return err
			}

		case PenaltyNone:
			t.RemainingQuests = append([]string(nil), t.CurrentQuests...)
			t.LastUpdated = now
			if err := trackers.Update(ctx, t); err != nil {
				return err
			}

		default:
			return ValidationError{Field: "penalty", Reason: "unknown penalty type " + string(penalty)}
		}

		res.Level = u.Level
		res.XP = u.XP
		res.Coins = u.Coins
		return nil
	})
	if err != nil {
		return nil, domainErr("daily refresh", err)
	}
	return res, nil
}

// SyncTrackers lazily refreshes every active tracker whose last update
// is not today, classifying each by missed days. This is the caller
// that upholds the once-per-day contract: a tracker already touched
// today is skipped entirely.
func (s *Service) SyncTrackers(ctx context.Context, userID string) ([]RefreshResult, error) {
	trackers, err := s.trackers.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, domainErr("tracker list", err)
	}

	now := s.now().UTC()
	var out []RefreshResult
	for _, t := range trackers {
		if DayKey(t.LastUpdated) == DayKey(now) {
			continue
		}
		// Misses are counted from the last fully completed day, not the
		// last touch: partial progress does not defer a penalty.
		last := t.CreatedAt
		if t.LastCompleted != nil {
			last = *t.LastCompleted
		}
		res, err := s.DailyRefresh(ctx, userID, t.ID, ClassifyRefresh(last, now))
		if err != nil {
			return out, err
		}
		out = append(out, *res)
	}
	return out, nil
}
