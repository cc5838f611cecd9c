package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// MasteryRepo provides access to per-(user, skill) mastery records.
type MasteryRepo interface {
	// Get returns the record for (userID, skillID).
	// Returns ErrNotFound if the learner has never practiced the skill.
	Get(ctx context.Context, userID, skillID string) (*MasteryRecord, error)

	// GetOrCreate returns the record for (userID, skillID), lazily
	// creating it at level 0 / not_started on first encounter.
	GetOrCreate(ctx context.Context, userID, skillID string) (*MasteryRecord, error)

	// Update persists all mutable fields of the record.
	Update(ctx context.Context, rec *MasteryRecord) error

	// ListByUser returns all records for a user.
	ListByUser(ctx context.Context, userID string) ([]MasteryRecord, error)

	// StrugglingCandidates returns records (with skill names) matching
	// the remediation selection: struggling status, repeated failures,
	// or a low success rate.
	StrugglingCandidates(ctx context.Context, userID string) ([]StrugglingCandidate, error)
}

type masteryRepo struct {
	db *sqlx.DB
}

func (r *masteryRepo) Get(ctx context.Context, userID, skillID string) (*MasteryRecord, error) {
	var rec MasteryRecord
	err := r.db.GetContext(ctx, &rec,
		`SELECT * FROM mastery_records WHERE user_id = ? AND skill_id = ?`,
		userID, skillID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get mastery record (%s, %s): %w", userID, skillID, err)
	}
	return &rec, nil
}

func (r *masteryRepo) GetOrCreate(ctx context.Context, userID, skillID string) (*MasteryRecord, error) {
	rec, err := r.Get(ctx, userID, skillID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO mastery_records (user_id, skill_id)
		VALUES (?, ?)
		ON CONFLICT (user_id, skill_id) DO NOTHING`,
		userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("create mastery record (%s, %s): %w", userID, skillID, err)
	}

	return r.Get(ctx, userID, skillID)
}

func (r *masteryRepo) Update(ctx context.Context, rec *MasteryRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE mastery_records SET
			level = ?,
			status = ?,
			success_rate = ?,
			practice_count = ?,
			consecutive_failures = ?,
			last_practiced_at = ?,
			next_review_at = ?,
			review_interval = ?,
			needs_review = ?,
			mastered_at = ?,
			updated_at = ?
		WHERE user_id = ? AND skill_id = ?`,
		rec.Level, rec.Status, rec.SuccessRate, rec.PracticeCount,
		rec.ConsecutiveFailures, rec.LastPracticedAt, rec.NextReviewAt,
		rec.ReviewInterval, rec.NeedsReview, rec.MasteredAt, rec.UpdatedAt,
		rec.UserID, rec.SkillID)
	if err != nil {
		return fmt.Errorf("update mastery record (%s, %s): %w", rec.UserID, rec.SkillID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *masteryRepo) ListByUser(ctx context.Context, userID string) ([]MasteryRecord, error) {
	var recs []MasteryRecord
	err := r.db.SelectContext(ctx, &recs,
		`SELECT * FROM mastery_records WHERE user_id = ? ORDER BY skill_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list mastery records for %s: %w", userID, err)
	}
	return recs, nil
}

func (r *masteryRepo) StrugglingCandidates(ctx context.Context, userID string) ([]StrugglingCandidate, error) {
	var recs []StrugglingCandidate
	err := r.db.SelectContext(ctx, &recs, `
		SELECT m.*, s.name AS skill_name
		FROM mastery_records m
		JOIN skills s ON s.id = m.skill_id
		WHERE m.user_id = ?
		AND (m.status = 'struggling' OR m.consecutive_failures >= 2 OR m.success_rate < 0.7)
		ORDER BY m.consecutive_failures DESC, m.success_rate ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query struggling candidates for %s: %w", userID, err)
	}
	return recs, nil
}
