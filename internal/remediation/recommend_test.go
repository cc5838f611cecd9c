package remediation

import (
	"context"
	"testing"

	"github.com/learnloop/learnloop/internal/store"
)

func TestReviewRecommendations_PriorityByOverdueCount(t *testing.T) {
	tests := []struct {
		name    string
		overdue int
		dueNow  int
		want    string
	}{
		{"three overdue is high", 3, 0, PriorityHigh},
		{"one overdue is medium", 1, 2, PriorityMedium},
		{"none overdue is low", 0, 2, PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := &fakeReviewRepo{}
			for i := 0; i < tt.overdue; i++ {
				reviews.due = append(reviews.due, dueIn("o", "Overdue Skill", -1))
			}
			for i := 0; i < tt.dueNow; i++ {
				reviews.due = append(reviews.due, dueIn("d", "Due Skill", 0))
			}
			d := newTestDetector(&fakeMasteryRepo{}, reviews)

			recs, err := d.ReviewRecommendations(context.Background(), "u1", nil, testNow)
			if err != nil {
				t.Fatal(err)
			}
			if len(recs) != 1 {
				t.Fatalf("got %d recommendations, want 1", len(recs))
			}
			if recs[0].Type != RecommendationReviewDue {
				t.Errorf("type = %q, want review_due", recs[0].Type)
			}
			if recs[0].Priority != tt.want {
				t.Errorf("priority = %q, want %q", recs[0].Priority, tt.want)
			}
			if recs[0].SuggestedTiming != "immediately" {
				t.Errorf("timing = %q, want immediately", recs[0].SuggestedTiming)
			}
		})
	}
}

func TestReviewRecommendations_StrugglingAlwaysHigh(t *testing.T) {
	masteryRepo := &fakeMasteryRepo{candidates: []store.StrugglingCandidate{
		candidate("s1", "SQL Joins", 60, "practicing", 0.65, 0),
	}}
	d := newTestDetector(masteryRepo, &fakeReviewRepo{})

	recs, err := d.ReviewRecommendations(context.Background(), "u1", nil, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Type != RecommendationStruggling || recs[0].Priority != PriorityHigh {
		t.Errorf("got %+v, want high-priority struggling recommendation", recs[0])
	}
}

func TestReviewRecommendations_AllowlistScopesReviewsOnly(t *testing.T) {
	masteryRepo := &fakeMasteryRepo{candidates: []store.StrugglingCandidate{
		candidate("s1", "Outside Objective", 30, "struggling", 0.4, 0),
	}}
	reviews := &fakeReviewRepo{due: []store.DueReview{
		dueIn("s2", "Wanted", -1),
		dueIn("s3", "Unwanted", -1),
	}}
	d := newTestDetector(masteryRepo, reviews)

	recs, err := d.ReviewRecommendations(context.Background(), "u1", []string{"Wanted"}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if len(recs[0].SkillNames) != 1 || recs[0].SkillNames[0] != "Wanted" {
		t.Errorf("review names = %v, want only the allowlisted skill", recs[0].SkillNames)
	}
	if recs[1].SkillNames[0] != "Outside Objective" {
		t.Errorf("struggling detection must ignore the allowlist, got %v", recs[1].SkillNames)
	}
}

func TestReviewRecommendations_EmptyWhenNothingDue(t *testing.T) {
	d := newTestDetector(&fakeMasteryRepo{}, &fakeReviewRepo{})

	recs, err := d.ReviewRecommendations(context.Background(), "u1", nil, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Fatalf("got %d recommendations, want none", len(recs))
	}
}
