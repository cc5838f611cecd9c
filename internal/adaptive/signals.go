package adaptive

import "strings"

// UserLevel is a learner's assessed technical level.
type UserLevel string

const (
	LevelAbsoluteBeginner UserLevel = "absolute_beginner"
	LevelBeginner         UserLevel = "beginner"
	LevelIntermediate     UserLevel = "intermediate"
	LevelAdvanced         UserLevel = "advanced"
)

// ParseUserLevel normalizes assessed-level text. Absent or unrecognized
// values default to beginner.
func ParseUserLevel(s string) UserLevel {
	switch UserLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelAbsoluteBeginner, LevelBeginner, LevelIntermediate, LevelAdvanced:
		return UserLevel(strings.ToLower(strings.TrimSpace(s)))
	default:
		return LevelBeginner
	}
}

// Urgency is how soon the learner needs results.
type Urgency string

const (
	UrgencyHigh      Urgency = "high"
	UrgencyMedium    Urgency = "medium"
	UrgencyLow       Urgency = "low"
	UrgencyUndefined Urgency = "undefined"
)

// urgency keyword tables, checked high first so that stronger signals
// win over weaker ones in mixed phrases.
var (
	highUrgencyWords   = []string{"urgent", "asap", "immediately", "as soon as possible", "deadline", "interview"}
	mediumUrgencyWords = []string{"soon", "few weeks", "this month", "upcoming"}
	lowUrgencyWords    = []string{"no rush", "whenever", "eventually", "someday", "relaxed", "own pace"}
)

// ParseUrgency normalizes free-form urgency text by keyword match.
// Unmatched or empty text is undefined.
func ParseUrgency(text string) Urgency {
	lower := strings.ToLower(text)
	for _, w := range highUrgencyWords {
		if strings.Contains(lower, w) {
			return UrgencyHigh
		}
	}
	for _, w := range mediumUrgencyWords {
		if strings.Contains(lower, w) {
			return UrgencyMedium
		}
	}
	for _, w := range lowUrgencyWords {
		if strings.Contains(lower, w) {
			return UrgencyLow
		}
	}
	return UrgencyUndefined
}

// Trend is the direction of recent practice performance.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
	TrendUndefined Trend = "undefined"
)

// ParseTrend normalizes trend text. Absent or unrecognized values are
// undefined.
func ParseTrend(s string) Trend {
	switch Trend(strings.ToLower(strings.TrimSpace(s))) {
	case TrendImproving, TrendStable, TrendDeclining:
		return Trend(strings.ToLower(strings.TrimSpace(s)))
	default:
		return TrendUndefined
	}
}

// Signals is the raw multi-signal input to strategy resolution. Zero
// values mean "signal absent"; the resolver normalizes everything to
// safe defaults and never fails.
type Signals struct {
	// TechnicalLevel is the assessed level text, empty when no
	// assessment was taken.
	TechnicalLevel string `json:"technicalLevel,omitempty"`

	// UrgencyText is the learner's own words about timing.
	UrgencyText string `json:"urgencyText,omitempty"`

	// WeeklyHours is the stated time commitment; zero when absent.
	WeeklyHours float64 `json:"weeklyHours,omitempty"`

	// NeedsEnvironmentSetup is set when the learner has no working
	// development environment yet.
	NeedsEnvironmentSetup bool `json:"needsEnvironmentSetup,omitempty"`

	// NeedsTerminalIntro is set when the learner has never used a
	// command line.
	NeedsTerminalIntro bool `json:"needsTerminalIntro,omitempty"`

	// TrendText is the recent performance trend, empty when unknown.
	TrendText string `json:"trendText,omitempty"`

	// AverageScore is the recent average performance score, nil when
	// no practice history exists.
	AverageScore *float64 `json:"averageScore,omitempty"`
}
