package remediation

import (
	"context"
	"fmt"

	"github.com/learnloop/learnloop/internal/mastery"
	"github.com/learnloop/learnloop/internal/spacedrep"
	"github.com/learnloop/learnloop/internal/store"
)

// Recommended actions, resolved by the ordered rules in actionFor.
const (
	ActionImmediateRemediation = "immediate remediation unit required"
	ActionRevisitFundamentals  = "revisit fundamentals"
	ActionAdditionalPractice   = "additional practice needed"
	ActionReviewAndPractice    = "review and practice"
)

// StrugglingSkill is a skill whose recent performance pattern indicates
// the learner needs remediation.
type StrugglingSkill struct {
	SkillID             string
	SkillName           string
	Level               int
	Status              mastery.Status
	SuccessRate         float64
	ConsecutiveFailures int
	RecommendedAction   string
}

// Detector scans mastery records for skills needing remediation.
type Detector struct {
	mastery   store.MasteryRepo
	scheduler *spacedrep.Scheduler
}

// NewDetector creates a detector over the given repository and scheduler.
func NewDetector(masteryRepo store.MasteryRepo, scheduler *spacedrep.Scheduler) *Detector {
	return &Detector{mastery: masteryRepo, scheduler: scheduler}
}

// DetectStruggling returns the user's skills matching the remediation
// selection (struggling status, two or more consecutive failures, or a
// success rate below 0.7), each with a recommended action.
func (d *Detector) DetectStruggling(ctx context.Context, userID string) ([]StrugglingSkill, error) {
	candidates, err := d.mastery.StrugglingCandidates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("scan mastery records: %w", err)
	}

	out := make([]StrugglingSkill, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, StrugglingSkill{
			SkillID:             c.SkillID,
			SkillName:           c.SkillName,
			Level:               c.Level,
			Status:              mastery.Status(c.Status),
			SuccessRate:         c.SuccessRate,
			ConsecutiveFailures: c.ConsecutiveFailures,
			RecommendedAction:   actionFor(c.MasteryRecord),
		})
	}
	return out, nil
}

// actionFor resolves the recommended action by ordered rules; the first
// match wins.
func actionFor(rec store.MasteryRecord) string {
	switch {
	case rec.ConsecutiveFailures >= 3:
		return ActionImmediateRemediation
	case rec.SuccessRate < 0.5:
		return ActionRevisitFundamentals
	case rec.Level < 30:
		return ActionAdditionalPractice
	default:
		return ActionReviewAndPractice
	}
}
