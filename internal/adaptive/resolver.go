package adaptive

import (
	"fmt"
	"strings"
	"time"
)

// Strategy is the pacing strategy a learning plan is generated under.
type Strategy string

const (
	StrategyAbsoluteBeginner Strategy = "absolute_beginner"
	StrategyBeginner         Strategy = "beginner"
	StrategyIntermediate     Strategy = "intermediate"
	StrategyAdvanced         Strategy = "advanced"
	StrategyAccelerated      Strategy = "accelerated"
)

// normalized holds signals after parsing, shared by the rule
// predicates and the note builders.
type normalized struct {
	level         UserLevel
	urgency       Urgency
	trend         Trend
	needsEnvSetup bool
}

// StrategyRule pairs a predicate with the strategy it selects. Rules
// are evaluated in order and the first match wins.
type StrategyRule struct {
	Name     string
	Matches  func(normalized) bool
	Strategy Strategy
}

// StrategyRules is the ordered rule list consulted by Resolve. The
// absolute-beginner rule is first so it always beats urgency-driven
// acceleration, and environment gaps pull early-stage learners down to
// the slowest pace even when their assessed level says beginner.
var StrategyRules = []StrategyRule{
	{
		Name:     "absolute beginner",
		Matches:  func(n normalized) bool { return n.level == LevelAbsoluteBeginner },
		Strategy: StrategyAbsoluteBeginner,
	},
	{
		Name:     "advanced and urgent",
		Matches:  func(n normalized) bool { return n.level == LevelAdvanced && n.urgency == UrgencyHigh },
		Strategy: StrategyAccelerated,
	},
	{
		Name:     "beginner without environment",
		Matches:  func(n normalized) bool { return n.needsEnvSetup && n.level == LevelBeginner },
		Strategy: StrategyAbsoluteBeginner,
	},
	{
		Name:     "declining performance",
		Matches:  func(n normalized) bool { return n.trend == TrendDeclining },
		Strategy: StrategyBeginner,
	},
}

// Metadata is the resolved pacing decision plus everything needed to
// explain or replay it: the normalized inputs, the raw signal snapshot
// they were derived from, and when the decision was computed.
type Metadata struct {
	Strategy    Strategy  `json:"strategy"`
	UserLevel   UserLevel `json:"userLevel"`
	Urgency     Urgency   `json:"urgency"`
	Trend       Trend     `json:"trend"`
	Adjustments []string  `json:"adjustments"`
	Confidence  float64   `json:"confidence"`

	// Signals is the untouched input snapshot, kept so a stored
	// decision can be audited against what the learner actually said.
	Signals Signals `json:"signals"`

	// ComputedAt is when the decision was made. Resolve leaves it zero;
	// ResolveAt stamps it.
	ComputedAt time.Time `json:"computedAt,omitzero"`
}

// Resolve turns raw signals into a pacing strategy. It is a pure
// function: identical signals always produce identical metadata, and
// it never consults storage or the clock.
func Resolve(sig Signals) Metadata {
	n := normalized{
		level:         ParseUserLevel(sig.TechnicalLevel),
		urgency:       ParseUrgency(sig.UrgencyText),
		trend:         ParseTrend(sig.TrendText),
		needsEnvSetup: sig.NeedsEnvironmentSetup,
	}

	strategy := resolveStrategy(n)

	return Metadata{
		Strategy:    strategy,
		UserLevel:   n.level,
		Urgency:     n.urgency,
		Trend:       n.trend,
		Adjustments: adjustmentNotes(sig, n),
		Confidence:  confidence(sig, n),
		Signals:     sig,
	}
}

// ResolveAt resolves and stamps the computation time. The timestamp is
// the only part of the metadata that varies between identical inputs.
func ResolveAt(sig Signals, now time.Time) Metadata {
	meta := Resolve(sig)
	meta.ComputedAt = now.UTC()
	return meta
}

func resolveStrategy(n normalized) Strategy {
	for _, rule := range StrategyRules {
		if rule.Matches(n) {
			return rule.Strategy
		}
	}
	return Strategy(n.level)
}

// confidence scores how much signal backed the decision: 0.3 base,
// 0.2 per signal group supplied, capped at 0.95.
func confidence(sig Signals, n normalized) float64 {
	c := 0.3
	if strings.TrimSpace(sig.TechnicalLevel) != "" {
		c += 0.2
	}
	if strings.TrimSpace(sig.UrgencyText) != "" || sig.WeeklyHours > 0 {
		c += 0.2
	}
	if n.trend != TrendUndefined {
		c += 0.2
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}

func adjustmentNotes(sig Signals, n normalized) []string {
	var notes []string
	if sig.NeedsEnvironmentSetup {
		notes = append(notes, "environment setup units scheduled before the first coding unit")
	}
	if sig.NeedsTerminalIntro {
		notes = append(notes, "terminal basics introduced before any command-line work")
	}
	switch n.trend {
	case TrendImproving:
		notes = append(notes, withAverage("difficulty ramp increased to match improving performance", sig.AverageScore))
	case TrendDeclining:
		notes = append(notes, withAverage("pace slowed and review density increased due to declining performance", sig.AverageScore))
	case TrendStable:
		notes = append(notes, withAverage("pace held steady on stable performance", sig.AverageScore))
	}
	if n.urgency == UrgencyHigh {
		notes = append(notes, "schedule compressed to front-load essential skills for high urgency")
	}
	if sig.WeeklyHours > 0 && sig.WeeklyHours < 10 {
		notes = append(notes, fmt.Sprintf("weekly load reduced to fit %.0f available hours per week", sig.WeeklyHours))
	}
	return notes
}

// withAverage appends the numeric average to a trend note when recent
// scores exist, so the note is calibrated rather than vague.
func withAverage(note string, avg *float64) string {
	if avg == nil {
		return note
	}
	return fmt.Sprintf("%s (recent average %.0f)", note, *avg)
}
