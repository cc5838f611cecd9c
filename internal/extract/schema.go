package extract

import "github.com/learnloop/learnloop/internal/llm"

// SkillListSchema defines the JSON schema for skill extraction responses.
var SkillListSchema = &llm.Schema{
	Name:        "skill-extraction",
	Description: "Canonical skills practiced by one learning unit",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skills": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"skillName": map[string]any{
							"type":        "string",
							"description": "Canonical skill name, e.g. \"Java OOP Inheritance\"",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "Broad skill category, e.g. \"Databases\" or \"Frontend Frameworks\"",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"enum":        []any{"beginner", "intermediate", "advanced", "expert"},
							"description": "How hard the skill is for a typical learner",
						},
						"targetLevel": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     100,
							"description": "Mastery level this unit aims for",
						},
						"practiceType": map[string]any{
							"type":        "string",
							"enum":        []any{"introduction", "practice", "review", "mastery"},
							"description": "The role this unit plays for the skill",
						},
					},
					"required":             []any{"skillName", "category", "difficulty", "targetLevel", "practiceType"},
					"additionalProperties": false,
				},
				"description": "Between 1 and 10 skills the unit practices",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "Short explanation of why these skills were chosen",
			},
		},
		"required":             []any{"skills", "reasoning"},
		"additionalProperties": false,
	},
}
