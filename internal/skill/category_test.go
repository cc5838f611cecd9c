package skill

import "testing"

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Java OOP Inheritance", "Java"},
		{"Spring Boot REST Controllers", "Java Frameworks"},
		{"Intro to Python decorators", "Python"},
		{"JavaScript closures", "JavaScript"},
		{"React hooks deep dive", "Frontend Frameworks"},
		{"SQL joins and subqueries", "Databases"},
		{"Database normalization", "Databases"},
		{"Sorting algorithms", "Algorithms"},
		{"Data structures: linked lists", "Data Structures"},
		{"Effective communication", "general"},
		{"", "general"},
	}
	for _, tt := range tests {
		if got := CategoryFor(tt.text); got != tt.expected {
			t.Errorf("CategoryFor(%q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestCategoryFor_CaseInsensitive(t *testing.T) {
	if got := CategoryFor("ADVANCED JAVA GENERICS"); got != "Java" {
		t.Errorf("CategoryFor uppercase = %q, want Java", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in       string
		expected Difficulty
	}{
		{"beginner", DifficultyBeginner},
		{"Intermediate", DifficultyIntermediate},
		{" advanced ", DifficultyAdvanced},
		{"expert", DifficultyExpert},
		{"wizard", DifficultyBeginner},
		{"", DifficultyBeginner},
	}
	for _, tt := range tests {
		if got := ParseDifficulty(tt.in); got != tt.expected {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestNameKey(t *testing.T) {
	if NameKey("  Java OOP  ") != "java oop" {
		t.Errorf("NameKey trims and lowercases, got %q", NameKey("  Java OOP  "))
	}
}
