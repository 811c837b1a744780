package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, level, xp, coins, rank, stats, titles, total_missions, completed_trackers, created_at, version`

func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepo) GetByName(ctx context.Context, name string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = ?`, name)
	return scanUser(row)
}

// GetOrCreateByName returns the named hunter, creating a fresh one at
// level 1, rank E, with all stats at level 1 if absent.
func (r *UserRepo) GetOrCreateByName(ctx context.Context, name string) (*User, error) {
	u, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u = &User{
		ID:        uuid.NewString(),
		Name:      name,
		Level:     1,
		Rank:      "E",
		Stats:     freshStats(),
		CreatedAt: time.Now().UTC(),
	}
	stats, err := encodeJSON(u.Stats)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, level, xp, coins, rank, stats, created_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`, u.ID, u.Name, u.Level, u.XP, u.Coins, u.Rank, stats, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user insert: %w", err)
	}
	return u, nil
}

// Update writes the user back with a compare-and-swap on version.
// Returns ErrVersionConflict if the row changed underneath the caller.
func (r *UserRepo) Update(ctx context.Context, u *User) error {
	stats, err := encodeJSON(u.Stats)
	if err != nil {
		return err
	}
	titles, err := encodeJSON(u.Titles)
	if err != nil {
		return err
	}
	completed, err := encodeJSON(u.CompletedTrackers)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET level = ?, xp = ?, coins = ?, rank = ?, stats = ?, titles = ?,
			total_missions = ?, completed_trackers = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, u.Level, u.XP, u.Coins, u.Rank, stats, titles, u.TotalMissions, completed, u.ID, u.Version)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user update rows: %w", err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	u.Version++
	return nil
}

func freshStats() map[string]StatProgress {
	stats := map[string]StatProgress{}
	for _, s := range []string{"strength", "intelligence", "agility", "endurance", "charisma"} {
		stats[s] = StatProgress{Value: 0, Level: 1}
	}
	return stats
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var stats, titles, completed sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Level, &u.XP, &u.Coins, &u.Rank,
		&stats, &titles, &u.TotalMissions, &completed, &u.CreatedAt, &u.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	u.Stats = map[string]StatProgress{}
	if err := decodeJSON(stats, &u.Stats); err != nil {
		return nil, err
	}
	if err := decodeJSON(titles, &u.Titles); err != nil {
		return nil, err
	}
	if err := decodeJSON(completed, &u.CompletedTrackers); err != nil {
		return nil, err
	}
	return &u, nil
}
