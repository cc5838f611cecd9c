package spacedrep

import (
	"context"
	"fmt"
	"time"

	"github.com/learnloop/learnloop/internal/store"
)

// Retention criteria: a skill counts as retained once the running
// review average is strong over at least two completed reviews.
const (
	retainedMinScore   = 80.0
	retainedMinReviews = 2
)

// Scheduler manages spaced-repetition review schedules. It is stateless;
// all state lives in the injected repository, and callers supply the
// current time explicitly.
type Scheduler struct {
	reviews store.ReviewRepo
}

// NewScheduler creates a scheduler over the given repository.
func NewScheduler(reviews store.ReviewRepo) *Scheduler {
	return &Scheduler{reviews: reviews}
}

// ScheduleInitial creates the first review schedule for a skill, seeding
// the interval from the learner's mastery level at introduction time.
func (s *Scheduler) ScheduleInitial(ctx context.Context, userID, skillID string, masteryLevel int, now time.Time) (*store.ReviewSchedule, error) {
	interval := InitialInterval(masteryLevel)
	sched := &store.ReviewSchedule{
		UserID:          userID,
		SkillID:         skillID,
		CurrentInterval: interval,
		NextReviewAt:    now.UTC().AddDate(0, 0, interval),
	}
	if err := s.reviews.Upsert(ctx, sched); err != nil {
		return nil, fmt.Errorf("schedule initial review: %w", err)
	}
	return sched, nil
}

// RecordReview advances the schedule after a completed review. The
// schedule must already exist; reviewing an unscheduled skill is a
// hard error (store.ErrNotFound).
func (s *Scheduler) RecordReview(ctx context.Context, userID, skillID string, score int, now time.Time) (*store.ReviewSchedule, error) {
	sched, err := s.reviews.Get(ctx, userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("load review schedule: %w", err)
	}

	now = now.UTC()

	sched.CurrentInterval = NextInterval(sched.CurrentInterval, score)
	sched.AverageReviewScore = (sched.AverageReviewScore*float64(sched.ReviewCount) + float64(score)) /
		float64(sched.ReviewCount+1)
	sched.ReviewCount++
	sched.IsRetained = sched.AverageReviewScore >= retainedMinScore && sched.ReviewCount >= retainedMinReviews
	sched.LastReviewedAt = &now
	sched.NextReviewAt = now.AddDate(0, 0, sched.CurrentInterval)

	if err := s.reviews.Upsert(ctx, sched); err != nil {
		return nil, fmt.Errorf("persist review schedule: %w", err)
	}
	return sched, nil
}

// DueSkill is one entry of a due-for-review list.
type DueSkill struct {
	SkillID      string
	SkillName    string
	MasteryLevel int
	NextReviewAt time.Time
	// IsOverdue marks reviews whose due time has strictly passed, as
	// opposed to falling due this instant.
	IsOverdue bool
}

// DueForReview returns all schedules due at or before now, optionally
// restricted to a skill-name allowlist (an objective's skill set).
func (s *Scheduler) DueForReview(ctx context.Context, userID string, allowlist []string, now time.Time) ([]DueSkill, error) {
	now = now.UTC()
	rows, err := s.reviews.DueBefore(ctx, userID, now, allowlist)
	if err != nil {
		return nil, fmt.Errorf("query due reviews: %w", err)
	}

	due := make([]DueSkill, 0, len(rows))
	for _, row := range rows {
		due = append(due, DueSkill{
			SkillID:      row.SkillID,
			SkillName:    row.SkillName,
			MasteryLevel: row.MasteryLevel,
			NextReviewAt: row.NextReviewAt,
			IsOverdue:    row.NextReviewAt.Before(now),
		})
	}
	return due, nil
}
