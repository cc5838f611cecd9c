package mastery

import (
	"math"
	"strings"
)

// PracticeType is the role a practice event plays in learning a skill.
type PracticeType string

const (
	PracticeIntroduction PracticeType = "introduction"
	PracticePractice     PracticeType = "practice"
	PracticeReview       PracticeType = "review"
	PracticeMastery      PracticeType = "mastery"
)

// ParsePracticeType normalizes free-form practice type text.
// Unrecognized values default to practice.
func ParsePracticeType(s string) PracticeType {
	switch PracticeType(strings.ToLower(strings.TrimSpace(s))) {
	case PracticeIntroduction:
		return PracticeIntroduction
	case PracticeReview:
		return PracticeReview
	case PracticeMastery:
		return PracticeMastery
	default:
		return PracticePractice
	}
}

// factor weights the level delta by the kind of practice performed.
func (pt PracticeType) factor() float64 {
	switch pt {
	case PracticeIntroduction:
		return 1.2
	case PracticeReview:
		return 0.8
	case PracticeMastery:
		return 1.5
	default:
		return 1.0
	}
}

// baseDelta buckets a 0-100 performance score into a raw level change.
func baseDelta(performance int) float64 {
	switch {
	case performance >= 90:
		return 15
	case performance >= 80:
		return 10
	case performance >= 70:
		return 5
	case performance >= 60:
		return 2
	default:
		return -5
	}
}

// LevelDelta computes the signed level change for one practice event:
// the bucketed base delta, weighted by practice type, damped by
// diminishing returns at high levels, and penalized while the learner
// is on a failure streak. The result is rounded to the nearest integer.
func LevelDelta(performance int, practiceType PracticeType, currentLevel, consecutiveFailures int) int {
	delta := baseDelta(performance) * practiceType.factor()

	if currentLevel > 80 {
		delta *= 0.5
	} else if currentLevel > 60 {
		delta *= 0.75
	}

	if consecutiveFailures > 0 {
		delta *= 0.7
	}

	return int(math.Round(delta))
}

// ApplyDelta returns the new level, clamped to [0,100].
func ApplyDelta(currentLevel, delta int) int {
	return clampInt(currentLevel+delta, 0, 100)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
