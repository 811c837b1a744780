package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			level INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			rank TEXT NOT NULL DEFAULT 'E',
			stats TEXT NOT NULL,
			titles TEXT,
			total_missions INTEGER NOT NULL DEFAULT 0,
			completed_trackers TEXT,
			created_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			stat TEXT NOT NULL,
			xp INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS missions (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			duration INTEGER NOT NULL,
			quest_ids TEXT NOT NULL,
			reward_xp INTEGER NOT NULL,
			reward_coins INTEGER NOT NULL,
			special_reward TEXT,
			fail_coins INTEGER NOT NULL,
			fail_stats INTEGER NOT NULL,
			skip_coins INTEGER NOT NULL,
			skip_stats INTEGER NOT NULL,
			rank TEXT NOT NULL,
			participants TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS trackers (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mission_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			duration INTEGER NOT NULL,
			current_quests TEXT NOT NULL,
			remaining_quests TEXT NOT NULL,
			quest_completion TEXT,
			streak INTEGER NOT NULL DEFAULT 0,
			daycount INTEGER NOT NULL DEFAULT 0,
			reward_xp INTEGER NOT NULL,
			reward_coins INTEGER NOT NULL,
			special_reward TEXT,
			fail_coins INTEGER NOT NULL,
			fail_stats INTEGER NOT NULL,
			skip_coins INTEGER NOT NULL,
			skip_stats INTEGER NOT NULL,
			rank TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			last_updated DATETIME NOT NULL,
			last_completed DATETIME,
			penalties_applied TEXT,
			created_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(user_id) REFERENCES users(id),
			FOREIGN KEY(mission_id) REFERENCES missions(id)
		);`,
		`CREATE TABLE IF NOT EXISTS sidequests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			difficulty TEXT NOT NULL,
			stat TEXT NOT NULL,
			xp INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL,
			completed_at DATETIME,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_trackers_user_id ON trackers(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_trackers_status ON trackers(status);`,
		`CREATE INDEX IF NOT EXISTS idx_sidequests_user_id ON sidequests(user_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
