package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/learnloop/learnloop/internal/skill"
)

// ReviewRepo provides access to per-(user, skill) review schedules.
type ReviewRepo interface {
	// Get returns the schedule for (userID, skillID).
	// Returns ErrNotFound if the skill has never been scheduled.
	Get(ctx context.Context, userID, skillID string) (*ReviewSchedule, error)

	// Upsert inserts or replaces the schedule for its (user, skill) key.
	Upsert(ctx context.Context, sched *ReviewSchedule) error

	// DueBefore returns schedules with next_review_at <= cutoff, joined
	// with skill name and current mastery level, optionally restricted
	// to a case-insensitive skill-name allowlist. Most overdue first.
	DueBefore(ctx context.Context, userID string, cutoff time.Time, allowlist []string) ([]DueReview, error)
}

type reviewRepo struct {
	db *sqlx.DB
}

func (r *reviewRepo) Get(ctx context.Context, userID, skillID string) (*ReviewSchedule, error) {
	var sched ReviewSchedule
	err := r.db.GetContext(ctx, &sched,
		`SELECT * FROM review_schedules WHERE user_id = ? AND skill_id = ?`,
		userID, skillID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review schedule (%s, %s): %w", userID, skillID, err)
	}
	return &sched, nil
}

func (r *reviewRepo) Upsert(ctx context.Context, sched *ReviewSchedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_schedules (
			user_id, skill_id, current_interval, next_review_at,
			last_reviewed_at, review_count, average_review_score, is_retained
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, skill_id) DO UPDATE SET
			current_interval = excluded.current_interval,
			next_review_at = excluded.next_review_at,
			last_reviewed_at = excluded.last_reviewed_at,
			review_count = excluded.review_count,
			average_review_score = excluded.average_review_score,
			is_retained = excluded.is_retained`,
		sched.UserID, sched.SkillID, sched.CurrentInterval, sched.NextReviewAt,
		sched.LastReviewedAt, sched.ReviewCount, sched.AverageReviewScore,
		sched.IsRetained)
	if err != nil {
		return fmt.Errorf("upsert review schedule (%s, %s): %w", sched.UserID, sched.SkillID, err)
	}
	return nil
}

func (r *reviewRepo) DueBefore(ctx context.Context, userID string, cutoff time.Time, allowlist []string) ([]DueReview, error) {
	query := `
		SELECT r.*, s.name AS skill_name,
			COALESCE(m.level, 0) AS mastery_level
		FROM review_schedules r
		JOIN skills s ON s.id = r.skill_id
		LEFT JOIN mastery_records m ON m.user_id = r.user_id AND m.skill_id = r.skill_id
		WHERE r.user_id = ? AND r.next_review_at <= ?`
	args := []any{userID, cutoff}

	if len(allowlist) > 0 {
		keys := make([]string, len(allowlist))
		for i, name := range allowlist {
			keys[i] = skill.NameKey(name)
		}
		in, inArgs, err := sqlx.In(` AND s.name_key IN (?)`, keys)
		if err != nil {
			return nil, fmt.Errorf("build allowlist clause: %w", err)
		}
		query += in
		args = append(args, inArgs...)
	}

	query += ` ORDER BY r.next_review_at ASC`

	var due []DueReview
	if err := r.db.SelectContext(ctx, &due, query, args...); err != nil {
		return nil, fmt.Errorf("query due reviews for %s: %w", userID, err)
	}
	return due, nil
}
