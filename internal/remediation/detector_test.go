package remediation

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/learnloop/learnloop/internal/spacedrep"
	"github.com/learnloop/learnloop/internal/store"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeMasteryRepo serves StrugglingCandidates from a fixed record set,
// applying the same selection the SQL query does.
type fakeMasteryRepo struct {
	candidates []store.StrugglingCandidate
}

func (r *fakeMasteryRepo) Get(context.Context, string, string) (*store.MasteryRecord, error) {
	return nil, store.ErrNotFound
}

func (r *fakeMasteryRepo) GetOrCreate(context.Context, string, string) (*store.MasteryRecord, error) {
	return nil, store.ErrNotFound
}

func (r *fakeMasteryRepo) Update(context.Context, *store.MasteryRecord) error { return nil }

func (r *fakeMasteryRepo) ListByUser(context.Context, string) ([]store.MasteryRecord, error) {
	return nil, nil
}

func (r *fakeMasteryRepo) StrugglingCandidates(_ context.Context, userID string) ([]store.StrugglingCandidate, error) {
	var out []store.StrugglingCandidate
	for _, c := range r.candidates {
		if c.UserID != userID {
			continue
		}
		if c.Status == "struggling" || c.ConsecutiveFailures >= 2 || c.SuccessRate < 0.7 {
			out = append(out, c)
		}
	}
	return out, nil
}

func candidate(skillID, name string, level int, status string, rate float64, failures int) store.StrugglingCandidate {
	return store.StrugglingCandidate{
		MasteryRecord: store.MasteryRecord{
			UserID:              "u1",
			SkillID:             skillID,
			Level:               level,
			Status:              status,
			SuccessRate:         rate,
			ConsecutiveFailures: failures,
		},
		SkillName: name,
	}
}

// fakeReviewRepo feeds the scheduler a fixed due list.
type fakeReviewRepo struct {
	due []store.DueReview
}

func (r *fakeReviewRepo) Get(context.Context, string, string) (*store.ReviewSchedule, error) {
	return nil, store.ErrNotFound
}

func (r *fakeReviewRepo) Upsert(context.Context, *store.ReviewSchedule) error { return nil }

func (r *fakeReviewRepo) DueBefore(_ context.Context, userID string, cutoff time.Time, allowlist []string) ([]store.DueReview, error) {
	allowed := make(map[string]bool, len(allowlist))
	for _, name := range allowlist {
		allowed[name] = true
	}
	var out []store.DueReview
	for _, d := range r.due {
		if d.UserID != userID || d.NextReviewAt.After(cutoff) {
			continue
		}
		if len(allowlist) > 0 && !allowed[d.SkillName] {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func newTestDetector(masteryRepo *fakeMasteryRepo, reviewRepo *fakeReviewRepo) *Detector {
	return NewDetector(masteryRepo, spacedrep.NewScheduler(reviewRepo))
}

// dueIn builds a due-list entry offset from testNow; negative days
// means overdue.
func dueIn(skillID, name string, days int) store.DueReview {
	return store.DueReview{
		ReviewSchedule: store.ReviewSchedule{
			UserID:          "u1",
			SkillID:         skillID,
			CurrentInterval: 3,
			NextReviewAt:    testNow.AddDate(0, 0, days),
		},
		SkillName: name,
	}
}

func TestDetectStruggling_RepeatedFailuresNeedRemediation(t *testing.T) {
	repo := &fakeMasteryRepo{candidates: []store.StrugglingCandidate{
		candidate("s1", "SQL Joins", 45, "practicing", 0.8, 3),
	}}
	d := newTestDetector(repo, &fakeReviewRepo{})

	got, err := d.DetectStruggling(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d skills, want 1", len(got))
	}
	if got[0].RecommendedAction != ActionImmediateRemediation {
		t.Errorf("action = %q, want %q", got[0].RecommendedAction, ActionImmediateRemediation)
	}
}

func TestDetectStruggling_Selection(t *testing.T) {
	repo := &fakeMasteryRepo{candidates: []store.StrugglingCandidate{
		candidate("s1", "By Status", 35, "struggling", 0.75, 0),
		candidate("s2", "By Failures", 50, "practicing", 0.8, 2),
		candidate("s3", "By Rate", 60, "practicing", 0.65, 0),
		candidate("s4", "Healthy", 80, "proficient", 0.9, 0),
	}}
	d := newTestDetector(repo, &fakeReviewRepo{})

	got, err := d.DetectStruggling(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(got))
	for _, ss := range got {
		names = append(names, ss.SkillName)
	}
	sort.Strings(names)
	want := []string{"By Failures", "By Rate", "By Status"}
	if len(names) != len(want) {
		t.Fatalf("selected %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("selected %v, want %v", names, want)
		}
	}
}

func TestActionFor_OrderedRules(t *testing.T) {
	tests := []struct {
		name string
		rec  store.MasteryRecord
		want string
	}{
		{"three failures win over everything", store.MasteryRecord{ConsecutiveFailures: 3, SuccessRate: 0.4, Level: 10}, ActionImmediateRemediation},
		{"low rate before low level", store.MasteryRecord{ConsecutiveFailures: 2, SuccessRate: 0.4, Level: 10}, ActionRevisitFundamentals},
		{"low level", store.MasteryRecord{ConsecutiveFailures: 2, SuccessRate: 0.6, Level: 25}, ActionAdditionalPractice},
		{"default", store.MasteryRecord{ConsecutiveFailures: 2, SuccessRate: 0.65, Level: 50}, ActionReviewAndPractice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := actionFor(tt.rec); got != tt.want {
				t.Errorf("actionFor = %q, want %q", got, tt.want)
			}
		})
	}
}
