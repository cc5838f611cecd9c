package mastery

import "testing"

func TestLevelDelta_PerformanceBuckets(t *testing.T) {
	tests := []struct {
		performance int
		want        int
	}{
		{100, 15},
		{90, 15},
		{89, 10},
		{80, 10},
		{79, 5},
		{70, 5},
		{69, 2},
		{60, 2},
		{59, -5},
		{0, -5},
	}
	for _, tt := range tests {
		got := LevelDelta(tt.performance, PracticePractice, 50, 0)
		if got != tt.want {
			t.Errorf("LevelDelta(perf=%d) = %d, want %d", tt.performance, got, tt.want)
		}
	}
}

func TestLevelDelta_PracticeTypeFactors(t *testing.T) {
	tests := []struct {
		pt   PracticeType
		want int
	}{
		{PracticeIntroduction, 18}, // 15 * 1.2
		{PracticePractice, 15},
		{PracticeReview, 12}, // 15 * 0.8
		{PracticeMastery, 23}, // round(15 * 1.5)
	}
	for _, tt := range tests {
		got := LevelDelta(95, tt.pt, 50, 0)
		if got != tt.want {
			t.Errorf("LevelDelta(type=%s) = %d, want %d", tt.pt, got, tt.want)
		}
	}
}

func TestLevelDelta_DiminishingReturns(t *testing.T) {
	if got := LevelDelta(95, PracticePractice, 85, 0); got != 8 { // round(15*0.5)
		t.Errorf("level>80 delta = %d, want 8", got)
	}
	if got := LevelDelta(95, PracticePractice, 70, 0); got != 11 { // round(15*0.75)
		t.Errorf("level>60 delta = %d, want 11", got)
	}
	if got := LevelDelta(95, PracticePractice, 60, 0); got != 15 {
		t.Errorf("level=60 delta = %d, want 15 (no damping)", got)
	}
}

func TestLevelDelta_FailureStreakPenalty(t *testing.T) {
	if got := LevelDelta(95, PracticePractice, 50, 1); got != 11 { // round(15*0.7)
		t.Errorf("delta with failure streak = %d, want 11", got)
	}
	if got := LevelDelta(50, PracticePractice, 50, 2); got != -4 { // round(-5*0.7)
		t.Errorf("negative delta with failure streak = %d, want -4", got)
	}
}

func TestApplyDelta_LevelStaysInBounds(t *testing.T) {
	for level := 0; level <= 100; level += 5 {
		for perf := 0; perf <= 100; perf += 5 {
			for _, fails := range []int{0, 1, 3} {
				for _, pt := range []PracticeType{PracticeIntroduction, PracticePractice, PracticeReview, PracticeMastery} {
					got := ApplyDelta(level, LevelDelta(perf, pt, level, fails))
					if got < 0 || got > 100 {
						t.Fatalf("level %d, perf %d, fails %d, type %s: new level %d out of [0,100]",
							level, perf, fails, pt, got)
					}
				}
			}
		}
	}
}

func TestParsePracticeType_DefaultsToPractice(t *testing.T) {
	if got := ParsePracticeType("warmup"); got != PracticePractice {
		t.Errorf("got %q, want practice", got)
	}
	if got := ParsePracticeType(" Review "); got != PracticeReview {
		t.Errorf("got %q, want review", got)
	}
}
