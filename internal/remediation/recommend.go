package remediation

import (
	"context"
	"fmt"
	"time"
)

// Recommendation kinds.
const (
	RecommendationReviewDue  = "review_due"
	RecommendationStruggling = "struggling"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is a priority-tagged suggestion for the next planning
// cycle. Every recommendation is suggested for immediate action; when
// several are returned at once, their relative ordering is left to the
// caller.
type Recommendation struct {
	Type            string
	Priority        string
	SkillNames      []string
	Message         string
	SuggestedTiming string
}

// ReviewRecommendations merges the due-for-review set and the struggling
// set into recommendations, optionally scoped to an objective's
// skill-name allowlist (which applies to the review set only; struggling
// detection always considers the whole record set).
func (d *Detector) ReviewRecommendations(ctx context.Context, userID string, allowlist []string, now time.Time) ([]Recommendation, error) {
	var recs []Recommendation

	due, err := d.scheduler.DueForReview(ctx, userID, allowlist, now)
	if err != nil {
		return nil, err
	}
	if len(due) > 0 {
		overdue := 0
		names := make([]string, 0, len(due))
		for _, ds := range due {
			names = append(names, ds.SkillName)
			if ds.IsOverdue {
				overdue++
			}
		}

		priority := PriorityLow
		if overdue >= 3 {
			priority = PriorityHigh
		} else if overdue > 0 {
			priority = PriorityMedium
		}

		recs = append(recs, Recommendation{
			Type:            RecommendationReviewDue,
			Priority:        priority,
			SkillNames:      names,
			Message:         fmt.Sprintf("%d skills are due for review (%d overdue)", len(due), overdue),
			SuggestedTiming: "immediately",
		})
	}

	struggling, err := d.DetectStruggling(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(struggling) > 0 {
		names := make([]string, 0, len(struggling))
		for _, ss := range struggling {
			names = append(names, ss.SkillName)
		}
		recs = append(recs, Recommendation{
			Type:            RecommendationStruggling,
			Priority:        PriorityHigh,
			SkillNames:      names,
			Message:         fmt.Sprintf("%d skills need remediation", len(struggling)),
			SuggestedTiming: "immediately",
		})
	}

	return recs, nil
}
