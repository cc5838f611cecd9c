package mastery

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/learnloop/learnloop/internal/spacedrep"
	"github.com/learnloop/learnloop/internal/store"
)

// Tracker updates a learner's mastery level and status after each
// practice or assessment event. It is stateless; all state lives in the
// injected repositories.
type Tracker struct {
	mastery store.MasteryRepo
	events  store.EventRepo
	now     func() time.Time
}

// NewTracker creates a tracker over the given repositories.
func NewTracker(masteryRepo store.MasteryRepo, events store.EventRepo) *Tracker {
	return &Tracker{
		mastery: masteryRepo,
		events:  events,
		now:     time.Now,
	}
}

// UpdateResult reports the effect of one level update.
type UpdateResult struct {
	UserID         string
	SkillID        string
	PreviousLevel  int
	NewLevel       int
	PreviousStatus Status
	NewStatus      Status
	StatusChanged  bool
	NewlyMastered  bool
	NeedsReview    bool
	ReviewInterval int
	NextReviewAt   time.Time
}

// UpdateLevel applies one scored practice event to the (userID, skillID)
// mastery record, lazily creating it on first encounter. Performance is
// clamped to [0,100]; the update itself is total and only storage
// failures propagate.
func (t *Tracker) UpdateLevel(ctx context.Context, userID, skillID string, performance int, practiceType PracticeType) (*UpdateResult, error) {
	rec, err := t.mastery.GetOrCreate(ctx, userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("load mastery record: %w", err)
	}

	performance = clampInt(performance, 0, 100)
	now := t.now().UTC()

	prevLevel := rec.Level
	prevStatus := Status(rec.Status)

	delta := LevelDelta(performance, practiceType, rec.Level, rec.ConsecutiveFailures)
	rec.Level = ApplyDelta(rec.Level, delta)

	rec.SuccessRate = (rec.SuccessRate*float64(rec.PracticeCount) + float64(performance)/100.0) /
		float64(rec.PracticeCount+1)
	rec.PracticeCount++

	if performance >= 70 {
		rec.ConsecutiveFailures = 0
	} else {
		rec.ConsecutiveFailures++
	}
	rec.NeedsReview = rec.ConsecutiveFailures >= 2 || performance < 70

	newStatus := ResolveStatus(rec.Level, rec.SuccessRate)
	rec.Status = string(newStatus)

	newlyMastered := false
	if newStatus == StatusMastered && rec.MasteredAt == nil {
		rec.MasteredAt = &now
		newlyMastered = true
	}

	// Refresh the review interval view on the mastery record, seeded
	// from its current interval. The authoritative review schedule is
	// advanced separately when a review is actually completed.
	rec.ReviewInterval = spacedrep.NextInterval(rec.ReviewInterval, performance)
	nextReview := now.AddDate(0, 0, rec.ReviewInterval)
	rec.NextReviewAt = &nextReview
	rec.LastPracticedAt = &now

	if err := t.mastery.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist mastery record: %w", err)
	}

	t.appendEvent(ctx, store.PracticeEventData{
		UserID:       userID,
		SkillID:      skillID,
		Performance:  performance,
		PracticeType: string(practiceType),
		LevelBefore:  prevLevel,
		LevelAfter:   rec.Level,
	})

	return &UpdateResult{
		UserID:         userID,
		SkillID:        skillID,
		PreviousLevel:  prevLevel,
		NewLevel:       rec.Level,
		PreviousStatus: prevStatus,
		NewStatus:      newStatus,
		StatusChanged:  prevStatus != newStatus,
		NewlyMastered:  newlyMastered,
		NeedsReview:    rec.NeedsReview,
		ReviewInterval: rec.ReviewInterval,
		NextReviewAt:   nextReview,
	}, nil
}

// SkillScore is one skill's outcome within a completed learning unit.
type SkillScore struct {
	SkillID      string
	Performance  int
	PracticeType PracticeType
}

// SkillError attributes a failed update to its skill.
type SkillError struct {
	SkillID string
	Err     error
}

func (e SkillError) Error() string {
	return fmt.Sprintf("skill %s: %v", e.SkillID, e.Err)
}

func (e SkillError) Unwrap() error { return e.Err }

// BatchResult aggregates per-skill outcomes of a batch update. Failed
// skills appear in Errors; successful ones in Results. A failure on one
// skill never discards updates already applied to others.
type BatchResult struct {
	Results []UpdateResult
	Errors  []SkillError
}

// UpdateBatch applies one update per scored skill with per-skill failure
// isolation. The returned error is nil even when individual skills
// failed; callers inspect BatchResult.Errors.
func (t *Tracker) UpdateBatch(ctx context.Context, userID string, scores []SkillScore) (*BatchResult, error) {
	out := &BatchResult{}
	for _, score := range scores {
		res, err := t.UpdateLevel(ctx, userID, score.SkillID, score.Performance, score.PracticeType)
		if err != nil {
			out.Errors = append(out.Errors, SkillError{SkillID: score.SkillID, Err: err})
			continue
		}
		out.Results = append(out.Results, *res)
	}
	return out, nil
}

// appendEvent records the practice audit event; a logging failure must
// not fail the update that already happened.
func (t *Tracker) appendEvent(ctx context.Context, data store.PracticeEventData) {
	if t.events == nil {
		return
	}
	if err := t.events.AppendPractice(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log practice event: %v\n", err)
	}
}
