package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type MissionRepo struct {
	db DBTX
}

func NewMissionRepo(db DBTX) *MissionRepo {
	return &MissionRepo{db: db}
}

const missionColumns = `id, title, description, duration, quest_ids, reward_xp, reward_coins,
	special_reward, fail_coins, fail_stats, skip_coins, skip_stats, rank, participants, created_at`

func (r *MissionRepo) Insert(ctx context.Context, m *Mission) error {
	questIDs, err := encodeJSON(m.QuestIDs)
	if err != nil {
		return err
	}
	participants, err := encodeJSON(m.Participants)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO missions (`+missionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Title, m.Description, m.Duration, questIDs, m.Reward.XP, m.Reward.Coins,
		nullIfEmpty(m.Reward.Special), m.FailPenalty.Coins, m.FailPenalty.Stats,
		m.SkipPenalty.Coins, m.SkipPenalty.Stats, m.Rank, participants, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("mission insert: %w", err)
	}
	return nil
}

func (r *MissionRepo) Get(ctx context.Context, id string) (*Mission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = ?`, id)
	m, err := scanMission(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mission get: %w", err)
	}
	return m, nil
}

func (r *MissionRepo) ListAll(ctx context.Context) ([]Mission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMission(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("mission scan: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission rows: %w", err)
	}
	return out, nil
}

// AddParticipant records that a hunter joined. The participant list is
// the only mutable part of a mission.
func (r *MissionRepo) AddParticipant(ctx context.Context, m *Mission, userID string) error {
	for _, p := range m.Participants {
		if p == userID {
			return nil
		}
	}
	m.Participants = append(m.Participants, userID)
	participants, err := encodeJSON(m.Participants)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE missions SET participants = ? WHERE id = ?`, participants, m.ID); err != nil {
		return fmt.Errorf("mission participants update: %w", err)
	}
	return nil
}

func scanMission(scan func(dest ...any) error) (*Mission, error) {
	var m Mission
	var description, special sql.NullString
	var questIDs, participants sql.NullString
	err := scan(&m.ID, &m.Title, &description, &m.Duration, &questIDs, &m.Reward.XP, &m.Reward.Coins,
		&special, &m.FailPenalty.Coins, &m.FailPenalty.Stats, &m.SkipPenalty.Coins, &m.SkipPenalty.Stats,
		&m.Rank, &participants, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	m.Reward.Special = special.String
	if err := decodeJSON(questIDs, &m.QuestIDs); err != nil {
		return nil, err
	}
	if err := decodeJSON(participants, &m.Participants); err != nil {
		return nil, err
	}
	return &m, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
