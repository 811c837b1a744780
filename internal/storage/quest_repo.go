package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

func (r *QuestRepo) Insert(ctx context.Context, q Quest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (id, title, stat, xp) VALUES (?, ?, ?, ?)
	`, q.ID, q.Title, q.Stat, q.XP)
	if err != nil {
		return fmt.Errorf("quest insert: %w", err)
	}
	return nil
}

func (r *QuestRepo) Get(ctx context.Context, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, stat, xp FROM quests WHERE id = ?`, id)
	var q Quest
	if err := row.Scan(&q.ID, &q.Title, &q.Stat, &q.XP); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest get: %w", err)
	}
	return &q, nil
}

// GetMany returns quests in the same order as ids. Missing ids are
// skipped rather than erroring; callers treat list length mismatches
// as stale references.
func (r *QuestRepo) GetMany(ctx context.Context, ids []string) ([]Quest, error) {
	out := make([]Quest, 0, len(ids))
	for _, id := range ids {
		q, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if q == nil {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}
