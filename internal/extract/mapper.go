package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/learnloop/learnloop/internal/llm"
	"github.com/learnloop/learnloop/internal/skill"
	"github.com/learnloop/learnloop/internal/store"
)

// TaskInput is one task inside a learning unit.
type TaskInput struct {
	Title       string
	Description string
	Type        string
}

// UnitInput is the learning-unit content skills are extracted from.
type UnitInput struct {
	Title            string
	Description      string
	Tasks            []TaskInput
	ObjectiveContext string
	DayNumber        int
	PreviousSkills   []string
	Language         string
}

// CandidateSkill is one extracted skill before canonical mapping.
type CandidateSkill struct {
	SkillName    string `json:"skillName"`
	Category     string `json:"category"`
	Difficulty   string `json:"difficulty"`
	TargetLevel  int    `json:"targetLevel"`
	PracticeType string `json:"practiceType"`
}

// skillListOutput is the raw extraction response before mapping.
type skillListOutput struct {
	Skills    []CandidateSkill `json:"skills"`
	Reasoning string           `json:"reasoning"`
}

const (
	defaultMaxTokens   = 2048
	defaultTemperature = 0.2
)

// Mapper turns free-form unit content into canonical skill references.
// The generative call is single-attempt: any provider or schema failure
// falls back to one deterministic keyword-classified skill.
type Mapper struct {
	provider llm.Provider
	skills   store.SkillRepo
}

// NewMapper creates a Mapper over the given provider and skill catalog.
func NewMapper(provider llm.Provider, skills store.SkillRepo) *Mapper {
	return &Mapper{provider: provider, skills: skills}
}

// ExtractSkills requests 1-10 candidate skills for the unit. It never
// fails: on any provider error or schema violation it returns the
// deterministic fallback and logs the cause to stderr.
func (m *Mapper) ExtractSkills(ctx context.Context, unit UnitInput) []CandidateSkill {
	ctx = llm.WithPurpose(ctx, "skill-extraction")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(unit)},
		},
		Schema:      SkillListSchema,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	resp, err := m.provider.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: skill extraction failed, using fallback: %v\n", err)
		return []CandidateSkill{Fallback(unit)}
	}

	var raw skillListOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil || len(raw.Skills) == 0 {
		fmt.Fprintf(os.Stderr, "warning: unusable skill extraction response, using fallback\n")
		return []CandidateSkill{Fallback(unit)}
	}

	return dedupCandidates(raw.Skills)
}

// MapToCanonical resolves candidates against the skill catalog by
// case-insensitive exact name match, creating missing skills with an
// auto-generated description. Name-exact matching is a known
// limitation; there is no fuzzy or semantic matching.
func (m *Mapper) MapToCanonical(ctx context.Context, candidates []CandidateSkill) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(candidates))
	for _, c := range candidates {
		s, err := m.skills.GetOrCreate(ctx, skill.Skill{
			Name:        c.SkillName,
			Description: fmt.Sprintf("Auto-generated skill for %s", c.SkillName),
			Category:    c.Category,
			Difficulty:  skill.ParseDifficulty(c.Difficulty),
		})
		if err != nil {
			return nil, fmt.Errorf("map skill %q: %w", c.SkillName, err)
		}
		out = append(out, *s)
	}
	return out, nil
}

// Fallback builds the single deterministic skill used when extraction
// fails: named after the unit title, categorized by keyword table.
func Fallback(unit UnitInput) CandidateSkill {
	name := strings.TrimSpace(unit.Title)
	if name == "" {
		name = "General Practice"
	}
	return CandidateSkill{
		SkillName:    name,
		Category:     skill.CategoryFor(unit.Title + " " + unit.Description),
		Difficulty:   string(skill.DifficultyBeginner),
		TargetLevel:  50,
		PracticeType: "practice",
	}
}

// dedupCandidates drops repeated skill names, case-insensitively,
// keeping the first occurrence.
func dedupCandidates(candidates []CandidateSkill) []CandidateSkill {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		key := skill.NameKey(c.SkillName)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
