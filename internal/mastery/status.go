package mastery

// Status is a learner's standing on one skill, derived from level and
// success rate. It is never set directly.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusStruggling Status = "struggling"
	StatusLearning   Status = "learning"
	StatusPracticing Status = "practicing"
	StatusProficient Status = "proficient"
	StatusMastered   Status = "mastered"
)

// StatusRule pairs a predicate over (level, successRate) with the status
// it yields.
type StatusRule struct {
	Name    string
	Matches func(level int, successRate float64) bool
	Status  Status
}

// StatusRules is the ordered rule list for status resolution; the first
// matching rule wins. Order is load-bearing: mastered/proficient/
// practicing gate on both level and success rate, learning on level
// alone, struggling on poor rate at low level.
var StatusRules = []StatusRule{
	{
		Name:    "mastered",
		Matches: func(level int, rate float64) bool { return level >= 90 && rate >= 0.85 },
		Status:  StatusMastered,
	},
	{
		Name:    "proficient",
		Matches: func(level int, rate float64) bool { return level >= 70 && rate >= 0.75 },
		Status:  StatusProficient,
	},
	{
		Name:    "practicing",
		Matches: func(level int, rate float64) bool { return level >= 40 && rate >= 0.6 },
		Status:  StatusPracticing,
	},
	{
		Name:    "learning",
		Matches: func(level int, rate float64) bool { return level >= 20 },
		Status:  StatusLearning,
	},
	{
		Name:    "struggling",
		Matches: func(level int, rate float64) bool { return rate < 0.5 && level < 40 },
		Status:  StatusStruggling,
	},
}

// ResolveStatus evaluates the ordered rules and returns the first match,
// or StatusNotStarted when no rule applies.
func ResolveStatus(level int, successRate float64) Status {
	for _, rule := range StatusRules {
		if rule.Matches(level, successRate) {
			return rule.Status
		}
	}
	return StatusNotStarted
}
