package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EventRepo provides append access to the audit event tables.
type EventRepo interface {
	// AppendLLMRequest records a generative API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendPractice records one applied level update.
	AppendPractice(ctx context.Context, data PracticeEventData) error

	// RecentPerformances returns the last N practice performance scores
	// for a user, most recent first.
	RecentPerformances(ctx context.Context, userID string, lastN int) ([]int, error)

	// RecentLLMEvents returns the last N generative API call events,
	// most recent first, optionally filtered by purpose.
	RecentLLMEvents(ctx context.Context, purpose string, lastN int) ([]LLMEvent, error)
}

type eventRepo struct {
	db *sqlx.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events (
			provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendPractice(ctx context.Context, data PracticeEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO practice_events (
			user_id, skill_id, performance, practice_type, level_before, level_after
		) VALUES (?, ?, ?, ?, ?, ?)`,
		data.UserID, data.SkillID, data.Performance, data.PracticeType,
		data.LevelBefore, data.LevelAfter)
	if err != nil {
		return fmt.Errorf("append practice event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMEvents(ctx context.Context, purpose string, lastN int) ([]LLMEvent, error) {
	query := `SELECT * FROM llm_events`
	args := []any{}
	if purpose != "" {
		query += ` WHERE purpose = ?`
		args = append(args, purpose)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, lastN)

	var events []LLMEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) RecentPerformances(ctx context.Context, userID string, lastN int) ([]int, error) {
	var scores []int
	err := r.db.SelectContext(ctx, &scores, `
		SELECT performance FROM practice_events
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?`,
		userID, lastN)
	if err != nil {
		return nil, fmt.Errorf("query recent performances for %s: %w", userID, err)
	}
	return scores, nil
}
