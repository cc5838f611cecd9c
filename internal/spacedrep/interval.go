package spacedrep

import "math"

// Interval bounds, in days. Every computed interval lands inside them.
const (
	MinIntervalDays = 1
	MaxIntervalDays = 60
)

// NextInterval advances a review interval based on review performance:
// strong recall expands the interval, weak recall contracts it. The
// result is always within [MinIntervalDays, MaxIntervalDays] regardless
// of input.
func NextInterval(current, performance int) int {
	var next int
	switch {
	case performance >= 90:
		next = current * 2
	case performance >= 80:
		next = int(math.Round(float64(current) * 1.5))
	case performance >= 70:
		next = current
	case performance >= 60:
		next = int(math.Round(float64(current) * 0.75))
	default:
		next = current / 2
	}

	if next < MinIntervalDays {
		return MinIntervalDays
	}
	if next > MaxIntervalDays {
		return MaxIntervalDays
	}
	return next
}

// InitialInterval seeds the first review interval from the learner's
// mastery level at the time the skill is introduced: stronger initial
// command earns a longer first gap.
func InitialInterval(level int) int {
	switch {
	case level >= 90:
		return 7
	case level >= 70:
		return 3
	case level >= 50:
		return 2
	default:
		return 1
	}
}
