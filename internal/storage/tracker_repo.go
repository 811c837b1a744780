package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type TrackerRepo struct {
	db DBTX
}

func NewTrackerRepo(db DBTX) *TrackerRepo {
	return &TrackerRepo{db: db}
}

const trackerColumns = `id, user_id, mission_id, title, description, duration,
	current_quests, remaining_quests, quest_completion, streak, daycount,
	reward_xp, reward_coins, special_reward, fail_coins, fail_stats, skip_coins, skip_stats,
	rank, status, last_updated, last_completed, penalties_applied, created_at, version`

func (r *TrackerRepo) Insert(ctx context.Context, t *Tracker) error {
	current, err := encodeJSON(t.CurrentQuests)
	if err != nil {
		return err
	}
	remaining, err := encodeJSON(t.RemainingQuests)
	if err != nil {
		return err
	}
	completion, err := encodeJSON(t.QuestCompletion)
	if err != nil {
		return err
	}
	penalties, err := encodeJSON(t.PenaltiesApplied)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO trackers (`+trackerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.MissionID, t.Title, t.Description, t.Duration,
		current, remaining, completion, t.Streak, t.Daycount,
		t.Reward.XP, t.Reward.Coins, nullIfEmpty(t.Reward.Special),
		t.FailPenalty.Coins, t.FailPenalty.Stats, t.SkipPenalty.Coins, t.SkipPenalty.Stats,
		t.Rank, t.Status, t.LastUpdated, t.LastCompleted, penalties, t.CreatedAt, t.Version)
	if err != nil {
		return fmt.Errorf("tracker insert: %w", err)
	}
	return nil
}

func (r *TrackerRepo) Get(ctx context.Context, id string) (*Tracker, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+trackerColumns+` FROM trackers WHERE id = ?`, id)
	t, err := scanTracker(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tracker get: %w", err)
	}
	return t, nil
}

func (r *TrackerRepo) ListByUser(ctx context.Context, userID string) ([]Tracker, error) {
	return r.list(ctx, `SELECT `+trackerColumns+` FROM trackers WHERE user_id = ? ORDER BY created_at ASC`, userID)
}

func (r *TrackerRepo) ListActiveByUser(ctx context.Context, userID string) ([]Tracker, error) {
	return r.list(ctx, `SELECT `+trackerColumns+` FROM trackers WHERE user_id = ? AND status = ? ORDER BY created_at ASC`, userID, TrackerActive)
}

func (r *TrackerRepo) list(ctx context.Context, query string, args ...any) ([]Tracker, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tracker list: %w", err)
	}
	defer rows.Close()

	var out []Tracker
	for rows.Next() {
		t, err := scanTracker(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("tracker scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tracker rows: %w", err)
	}
	return out, nil
}

// Update writes the tracker back with a compare-and-swap on version.
// Returns ErrVersionConflict if the row changed underneath the caller.
func (r *TrackerRepo) Update(ctx context.Context, t *Tracker) error {
	current, err := encodeJSON(t.CurrentQuests)
	if err != nil {
		return err
	}
	remaining, err := encodeJSON(t.RemainingQuests)
	if err != nil {
		return err
	}
	completion, err := encodeJSON(t.QuestCompletion)
	if err != nil {
		return err
	}
	penalties, err := encodeJSON(t.PenaltiesApplied)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE trackers
		SET title = ?, description = ?, duration = ?,
			current_quests = ?, remaining_quests = ?, quest_completion = ?,
			streak = ?, daycount = ?,
			reward_xp = ?, reward_coins = ?, special_reward = ?,
			fail_coins = ?, fail_stats = ?, skip_coins = ?, skip_stats = ?,
			rank = ?, status = ?, last_updated = ?, last_completed = ?, penalties_applied = ?,
			version = version + 1
		WHERE id = ? AND version = ?
	`, t.Title, t.Description, t.Duration,
		current, remaining, completion, t.Streak, t.Daycount,
		t.Reward.XP, t.Reward.Coins, nullIfEmpty(t.Reward.Special),
		t.FailPenalty.Coins, t.FailPenalty.Stats, t.SkipPenalty.Coins, t.SkipPenalty.Stats,
		t.Rank, t.Status, t.LastUpdated, t.LastCompleted, penalties, t.ID, t.Version)
	if err != nil {
		return fmt.Errorf("tracker update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tracker update rows: %w", err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	t.Version++
	return nil
}

func (r *TrackerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trackers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("tracker delete: %w", err)
	}
	return nil
}

func scanTracker(scan func(dest ...any) error) (*Tracker, error) {
	var t Tracker
	var description, special sql.NullString
	var current, remaining, completion, penalties sql.NullString
	var lastCompleted sql.NullTime
	err := scan(&t.ID, &t.UserID, &t.MissionID, &t.Title, &description, &t.Duration,
		&current, &remaining, &completion, &t.Streak, &t.Daycount,
		&t.Reward.XP, &t.Reward.Coins, &special,
		&t.FailPenalty.Coins, &t.FailPenalty.Stats, &t.SkipPenalty.Coins, &t.SkipPenalty.Stats,
		&t.Rank, &t.Status, &t.LastUpdated, &lastCompleted, &penalties, &t.CreatedAt, &t.Version)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Reward.Special = special.String
	if lastCompleted.Valid {
		lc := lastCompleted.Time
		t.LastCompleted = &lc
	}
	if err := decodeJSON(current, &t.CurrentQuests); err != nil {
		return nil, err
	}
	if err := decodeJSON(remaining, &t.RemainingQuests); err != nil {
		return nil, err
	}
	t.QuestCompletion = map[string][]string{}
	if err := decodeJSON(completion, &t.QuestCompletion); err != nil {
		return nil, err
	}
	if err := decodeJSON(penalties, &t.PenaltiesApplied); err != nil {
		return nil, err
	}
	return &t, nil
}
