package extract

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a curriculum analyst identifying the concrete skills a learning unit practices.

Rules:
- Extract between 1 and 10 skills. Prefer a handful of precise skills over one vague one.
- Skill names must be canonical and reusable across units, e.g. "Java OOP Inheritance", not "today's exercise".
- If a previously covered skill is practiced again, reuse its exact name so progress accumulates on one record.
- Category should be a broad grouping such as "Databases", "Frontend Frameworks", or "Algorithms".
- targetLevel is the mastery level (0-100) a learner should reach after completing this unit.
- practiceType reflects the unit's role for that skill: introduction for first contact, practice for reinforcement, review for spaced repetition, mastery for a final push.`

// buildUserMessage flattens a unit into the extraction prompt.
func buildUserMessage(unit UnitInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Unit title: %s\n", unit.Title)
	if unit.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", unit.Description)
	}
	if unit.DayNumber > 0 {
		fmt.Fprintf(&b, "Day number: %d\n", unit.DayNumber)
	}
	if unit.Language != "" {
		fmt.Fprintf(&b, "Target language: %s\n", unit.Language)
	}
	fmt.Fprintf(&b, "Learning objective: %s\n", unit.ObjectiveContext)

	b.WriteString("\nTasks:\n")
	if len(unit.Tasks) == 0 {
		b.WriteString("None\n")
	}
	for i, task := range unit.Tasks {
		fmt.Fprintf(&b, "%d. %s", i+1, task.Title)
		if task.Type != "" {
			fmt.Fprintf(&b, " [%s]", task.Type)
		}
		if task.Description != "" {
			fmt.Fprintf(&b, " - %s", task.Description)
		}
		b.WriteString("\n")
	}

	if len(unit.PreviousSkills) > 0 {
		b.WriteString("\nPreviously covered skills:\n")
		for _, name := range unit.PreviousSkills {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
