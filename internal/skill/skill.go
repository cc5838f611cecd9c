package skill

import (
	"strings"
	"time"
)

// Difficulty grades a skill from a learner's point of view.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// ParseDifficulty normalizes free-form difficulty text.
// Unrecognized values default to beginner.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return Difficulty(strings.ToLower(strings.TrimSpace(s)))
	default:
		return DifficultyBeginner
	}
}

// Skill is an atomic, named unit of competence.
// Names are unique case-insensitively and immutable once created.
type Skill struct {
	ID            string     `db:"id"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	Category      string     `db:"category"`
	Difficulty    Difficulty `db:"difficulty"`
	ParentID      *string    `db:"parent_id"`
	Prerequisites []string   `db:"-"`
	CreatedAt     time.Time  `db:"created_at"`
}

// NameKey returns the canonical lookup key for a skill name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
