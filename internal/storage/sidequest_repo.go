package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type SidequestRepo struct {
	db DBTX
}

func NewSidequestRepo(db DBTX) *SidequestRepo {
	return &SidequestRepo{db: db}
}

const sidequestColumns = `id, user_id, title, description, difficulty, stat, xp, coins, status, created_at, completed_at`

func (r *SidequestRepo) Insert(ctx context.Context, s *Sidequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sidequests (`+sidequestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.Title, s.Description, s.Difficulty, s.Stat, s.XP, s.Coins, s.Status, s.CreatedAt, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("sidequest insert: %w", err)
	}
	return nil
}

func (r *SidequestRepo) Get(ctx context.Context, id string) (*Sidequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sidequestColumns+` FROM sidequests WHERE id = ?`, id)
	s, err := scanSidequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sidequest get: %w", err)
	}
	return s, nil
}

func (r *SidequestRepo) ListByUser(ctx context.Context, userID string) ([]Sidequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sidequestColumns+` FROM sidequests WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("sidequest list: %w", err)
	}
	defer rows.Close()

	var out []Sidequest
	for rows.Next() {
		s, err := scanSidequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sidequest scan: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sidequest rows: %w", err)
	}
	return out, nil
}

func (r *SidequestRepo) Update(ctx context.Context, s *Sidequest) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sidequests SET status = ?, completed_at = ? WHERE id = ?
	`, s.Status, s.CompletedAt, s.ID)
	if err != nil {
		return fmt.Errorf("sidequest update: %w", err)
	}
	return nil
}

func scanSidequest(scan func(dest ...any) error) (*Sidequest, error) {
	var s Sidequest
	var description sql.NullString
	var completedAt sql.NullTime
	err := scan(&s.ID, &s.UserID, &s.Title, &description, &s.Difficulty, &s.Stat,
		&s.XP, &s.Coins, &s.Status, &s.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	s.Description = description.String
	if completedAt.Valid {
		t := completedAt.Time
		s.CompletedAt = &t
	}
	return &s, nil
}
