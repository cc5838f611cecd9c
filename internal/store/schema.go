package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// createSchema creates all tables if they don't exist.
func createSchema(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS skills (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			name_key TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'general',
			difficulty TEXT NOT NULL DEFAULT 'beginner',
			parent_id TEXT REFERENCES skills(id),
			prerequisites TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS mastery_records (
			user_id TEXT NOT NULL,
			skill_id TEXT NOT NULL REFERENCES skills(id),
			level INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'not_started',
			success_rate REAL NOT NULL DEFAULT 0,
			practice_count INTEGER NOT NULL DEFAULT 0,
			consecutive_failures INTEGER NOT NULL DEFAULT 0,
			last_practiced_at TIMESTAMP,
			next_review_at TIMESTAMP,
			review_interval INTEGER NOT NULL DEFAULT 1,
			needs_review BOOLEAN NOT NULL DEFAULT false,
			mastered_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, skill_id)
		)`,
		`CREATE TABLE IF NOT EXISTS review_schedules (
			user_id TEXT NOT NULL,
			skill_id TEXT NOT NULL REFERENCES skills(id),
			current_interval INTEGER NOT NULL DEFAULT 1,
			next_review_at TIMESTAMP NOT NULL,
			last_reviewed_at TIMESTAMP,
			review_count INTEGER NOT NULL DEFAULT 0,
			average_review_score REAL NOT NULL DEFAULT 0,
			is_retained BOOLEAN NOT NULL DEFAULT false,
			PRIMARY KEY (user_id, skill_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_schedules_next_review
			ON review_schedules (user_id, next_review_at)`,
		`CREATE TABLE IF NOT EXISTS practice_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			skill_id TEXT NOT NULL,
			performance INTEGER NOT NULL,
			practice_type TEXT NOT NULL,
			level_before INTEGER NOT NULL,
			level_after INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_practice_events_user
			ON practice_events (user_id, id)`,
		`CREATE TABLE IF NOT EXISTS llm_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}
