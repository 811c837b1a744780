package engine

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"hunterquest/internal/storage"
)

// CreateMission asks the content generator for a mission matching the
// goal description and persists it. Generator output is validated in
// full before anything is written; a rejected response leaves zero
// state behind.
func (s *Service) CreateMission(ctx context.Context, goal string, durationDays int) (*storage.Mission, error) {
	if goal == "" {
		return nil, ValidationError{Field: "goal", Reason: "description is required"}
	}
	if durationDays < 1 {
		return nil, ValidationError{Field: "duration", Reason: "must be at least 1 day"}
	}

	plan, err := s.gen.GenerateMission(ctx, goal, durationDays)
	if err != nil {
		return nil, domainGenErr(err)
	}
	if err := CheckMissionPlan(plan); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	mission := &storage.Mission{
		ID:          uuid.NewString(),
		Title:       plan.Title,
		Description: plan.Description,
		Duration:    durationDays,
		Reward:      storage.Reward{XP: plan.RewardXP, Coins: plan.RewardCoins, Special: string(plan.Special)},
		FailPenalty: storage.Penalty{Coins: plan.Penalty.FailCoins, Stats: plan.Penalty.FailStats},
		SkipPenalty: storage.Penalty{Coins: plan.Penalty.SkipCoins, Stats: plan.Penalty.SkipStats},
		Rank:        string(plan.Rank),
		CreatedAt:   now,
	}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		quests := storage.NewQuestRepo(tx)
		for _, qp := range plan.Quests {
			q := storage.Quest{ID: uuid.NewString(), Title: qp.Title, Stat: string(qp.Stat), XP: qp.XP}
			if err := quests.Insert(ctx, q); err != nil {
				return err
			}
			mission.QuestIDs = append(mission.QuestIDs, q.ID)
		}
		return storage.NewMissionRepo(tx).Insert(ctx, mission)
	})
	if err != nil {
		return nil, domainErr("mission create", err)
	}
	return mission, nil
}

// JoinMission creates the hunter's live tracker for a mission, copying
// quest refs and flattening the reward/penalty/rank envelope so later
// upgrades never touch the shared template.
func (s *Service) JoinMission(ctx context.Context, userID, missionID string) (*storage.Tracker, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var tracker *storage.Tracker
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := storage.NewUserRepo(tx)
		trackers := storage.NewTrackerRepo(tx)
		missions := storage.NewMissionRepo(tx)

		u, err := s.getUser(ctx, users, userID)
		if err != nil {
			return err
		}
		m, err := missions.Get(ctx, missionID)
		if err != nil {
			return err
		}
		if m == nil {
			return NotFoundError{Kind: "mission", ID: missionID}
		}

		existing, err := trackers.ListActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, t := range existing {
			if t.MissionID == missionID {
				return ValidationError{Field: "mission", Reason: "already joined"}
			}
		}

		now := s.now().UTC()
		tracker = &storage.Tracker{
			ID:              uuid.NewString(),
			UserID:          userID,
			MissionID:       m.ID,
			Title:           m.Title,
			Description:     m.Description,
			Duration:        m.Duration,
			CurrentQuests:   append([]string(nil), m.QuestIDs...),
			RemainingQuests: append([]string(nil), m.QuestIDs...),
			QuestCompletion: map[string][]string{},
			Reward:          m.Reward,
			FailPenalty:     m.FailPenalty,
			SkipPenalty:     m.SkipPenalty,
			Rank:            m.Rank,
			Status:          storage.TrackerActive,
			LastUpdated:     now,
			CreatedAt:       now,
		}
		if err := trackers.Insert(ctx, tracker); err != nil {
			return err
		}

		u.TotalMissions++
		if err := users.Update(ctx, u); err != nil {
			return err
		}
		return missions.AddParticipant(ctx, m, userID)
	})
	if err != nil {
		return nil, domainErr("mission join", err)
	}
	return tracker, nil
}

// AbandonTracker removes an active tracker without penalty. The mission
// template and the hunter's progression are left untouched.
func (s *Service) AbandonTracker(ctx context.Context, userID, trackerID string) error {
	unlock := s.lockUser(userID)
	defer unlock()

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		trackers := storage.NewTrackerRepo(tx)
		t, err := s.getActiveTracker(ctx, trackers, trackerID)
		if err != nil {
			return err
		}
		if t.UserID != userID {
			return NotFoundError{Kind: "tracker", ID: trackerID}
		}
		return trackers.Delete(ctx, trackerID)
	})
	return domainErr("tracker abandon", err)
}

// DeleteTracker removes a tracker row in any state, including completed
// trackers kept for review.
func (s *Service) DeleteTracker(ctx context.Context, userID, trackerID string) error {
	unlock := s.lockUser(userID)
	defer unlock()

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		trackers := storage.NewTrackerRepo(tx)
		t, err := trackers.Get(ctx, trackerID)
		if err != nil {
			return err
		}
		if t == nil || t.UserID != userID {
			return NotFoundError{Kind: "tracker", ID: trackerID}
		}
		return trackers.Delete(ctx, trackerID)
	})
	return domainErr("tracker delete", err)
}

// domainGenErr normalizes generator failures: typed errors (schema
// violations mapped by the client) pass through, anything else is an
// external-service failure.
func domainGenErr(err error) error {
	switch err.(type) {
	case ValidationError, ExternalServiceError:
		return err
	}
	return ExternalServiceError{Service: "content generator", Err: err}
}
