package skill

import "strings"

// CategoryGeneral is the category assigned when no keyword matches.
const CategoryGeneral = "general"

// categoryKeywords maps content keywords to skill categories, checked in
// order. The first matching keyword wins, so more specific entries
// (frameworks) come before broader ones (languages).
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"spring", "Java Frameworks"},
	{"react", "Frontend Frameworks"},
	{"javascript", "JavaScript"},
	{"python", "Python"},
	{"java", "Java"},
	{"sql", "Databases"},
	{"database", "Databases"},
	{"data structure", "Data Structures"},
	{"algorithm", "Algorithms"},
}

// CategoryFor infers a skill category from free-form text using the
// keyword table. Matching is case-insensitive substring containment.
// Returns CategoryGeneral when nothing matches.
func CategoryFor(text string) string {
	lower := strings.ToLower(text)
	for _, kc := range categoryKeywords {
		if strings.Contains(lower, kc.keyword) {
			return kc.category
		}
	}
	return CategoryGeneral
}
