package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/learnloop/learnloop/internal/llm"
	"github.com/learnloop/learnloop/internal/skill"
	"github.com/learnloop/learnloop/internal/store"
)

var sampleUnit = UnitInput{
	Title:            "Spring Boot REST Controllers",
	Description:      "Build a small REST API with Spring Boot",
	Tasks:            []TaskInput{{Title: "Implement GET endpoint", Type: "coding"}},
	ObjectiveContext: "Become a backend Java developer",
	DayNumber:        4,
	Language:         "java",
}

func validExtraction(t *testing.T, candidates ...CandidateSkill) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(skillListOutput{Skills: candidates, Reasoning: "matched unit tasks"})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestExtractSkillsParsesResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExtraction(t,
		CandidateSkill{SkillName: "Spring Boot REST", Category: "Java Frameworks", Difficulty: "intermediate", TargetLevel: 60, PracticeType: "practice"},
		CandidateSkill{SkillName: "HTTP Fundamentals", Category: "Networking", Difficulty: "beginner", TargetLevel: 40, PracticeType: "introduction"},
	)})
	m := NewMapper(mock, nil)

	got := m.ExtractSkills(context.Background(), sampleUnit)
	if len(got) != 2 {
		t.Fatalf("got %d skills, want 2", len(got))
	}
	if got[0].SkillName != "Spring Boot REST" || got[1].SkillName != "HTTP Fundamentals" {
		t.Fatalf("unexpected skills: %+v", got)
	}
	if mock.Calls[0].Schema != SkillListSchema {
		t.Error("request did not carry the extraction schema")
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "Spring Boot REST Controllers") {
		t.Error("prompt missing unit title")
	}
}

func TestExtractSkillsDedupsNames(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExtraction(t,
		CandidateSkill{SkillName: "Java OOP", Category: "Java", Difficulty: "beginner", TargetLevel: 50, PracticeType: "practice"},
		CandidateSkill{SkillName: "java oop", Category: "Java", Difficulty: "beginner", TargetLevel: 70, PracticeType: "review"},
		CandidateSkill{SkillName: "Java Collections", Category: "Java", Difficulty: "beginner", TargetLevel: 50, PracticeType: "practice"},
	)})
	m := NewMapper(mock, nil)

	got := m.ExtractSkills(context.Background(), sampleUnit)
	if len(got) != 2 {
		t.Fatalf("got %d skills, want 2 after dedup: %+v", len(got), got)
	}
	if got[0].SkillName != "Java OOP" {
		t.Errorf("dedup should keep the first occurrence, got %q", got[0].SkillName)
	}
}

func TestExtractSkillsFallbackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}})
	m := NewMapper(mock, nil)

	got := m.ExtractSkills(context.Background(), sampleUnit)
	if len(got) != 1 {
		t.Fatalf("got %d skills, want exactly 1 fallback", len(got))
	}
	if got[0].SkillName != "Spring Boot REST Controllers" {
		t.Errorf("fallback name = %q, want unit title", got[0].SkillName)
	}
	if got[0].Category != "Java Frameworks" {
		t.Errorf("fallback category = %q, want Java Frameworks", got[0].Category)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want single attempt", mock.CallCount())
	}
}

func TestExtractSkillsFallbackOnTruncatedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrMaxTokensExceeded{Content: json.RawMessage(`{"skills":[{"skillNa`)},
	})
	m := NewMapper(mock, nil)

	got := m.ExtractSkills(context.Background(), sampleUnit)
	if len(got) != 1 {
		t.Fatalf("got %d skills, want exactly 1 fallback", len(got))
	}
	if got[0].SkillName != "Spring Boot REST Controllers" {
		t.Errorf("fallback name = %q, want unit title", got[0].SkillName)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want single attempt", mock.CallCount())
	}
}

func TestExtractSkillsFallbackOnMalformedContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `skills: oops`},
		{"wrong shape", `{"skills": "oops", "reasoning": "x"}`},
		{"empty skill list", `{"skills": [], "reasoning": "nothing found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			m := NewMapper(mock, nil)

			got := m.ExtractSkills(context.Background(), sampleUnit)
			if len(got) != 1 {
				t.Fatalf("got %d skills, want exactly 1 fallback", len(got))
			}
			if got[0].Category == "" {
				t.Error("fallback category must be non-empty")
			}
		})
	}
}

func TestFallbackCategories(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Spring Data JPA", "Java Frameworks"},
		{"React Hooks Deep Dive", "Frontend Frameworks"},
		{"SQL Joins Workshop", "Databases"},
		{"Sorting Algorithms", "Algorithms"},
		{"Watercolor Painting", skill.CategoryGeneral},
	}
	for _, tt := range tests {
		got := Fallback(UnitInput{Title: tt.title})
		if got.Category != tt.want {
			t.Errorf("Fallback(%q).Category = %q, want %q", tt.title, got.Category, tt.want)
		}
		if got.SkillName != tt.title {
			t.Errorf("Fallback(%q).SkillName = %q, want the title", tt.title, got.SkillName)
		}
	}
}

func TestFallbackEmptyTitle(t *testing.T) {
	got := Fallback(UnitInput{})
	if got.SkillName == "" {
		t.Error("fallback skill name must be non-empty")
	}
	if got.Category != skill.CategoryGeneral {
		t.Errorf("category = %q, want %q", got.Category, skill.CategoryGeneral)
	}
}

// fakeSkillRepo is an in-memory SkillRepo keyed case-insensitively.
type fakeSkillRepo struct {
	byKey   map[string]*skill.Skill
	created int
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{byKey: make(map[string]*skill.Skill)}
}

func (r *fakeSkillRepo) GetOrCreate(_ context.Context, s skill.Skill) (*skill.Skill, error) {
	key := skill.NameKey(s.Name)
	if existing, ok := r.byKey[key]; ok {
		return existing, nil
	}
	r.created++
	s.ID = key
	r.byKey[key] = &s
	return &s, nil
}

func (r *fakeSkillRepo) GetByName(_ context.Context, name string) (*skill.Skill, error) {
	if s, ok := r.byKey[skill.NameKey(name)]; ok {
		return s, nil
	}
	return nil, store.ErrNotFound
}

func (r *fakeSkillRepo) GetByID(_ context.Context, id string) (*skill.Skill, error) {
	if s, ok := r.byKey[id]; ok {
		return s, nil
	}
	return nil, store.ErrNotFound
}

func (r *fakeSkillRepo) List(_ context.Context) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(r.byKey))
	for _, s := range r.byKey {
		out = append(out, *s)
	}
	return out, nil
}

func TestMapToCanonicalReusesExistingByName(t *testing.T) {
	repo := newFakeSkillRepo()
	existing, err := repo.GetOrCreate(context.Background(), skill.Skill{Name: "Java OOP", Category: "Java"})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMapper(nil, repo)

	got, err := m.MapToCanonical(context.Background(), []CandidateSkill{
		{SkillName: "JAVA OOP", Category: "Java", Difficulty: "beginner", TargetLevel: 60, PracticeType: "practice"},
		{SkillName: "SQL Joins", Category: "Databases", Difficulty: "beginner", TargetLevel: 40, PracticeType: "introduction"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d skills, want 2", len(got))
	}
	if got[0].ID != existing.ID {
		t.Error("case-insensitive name match should reuse the existing skill")
	}
	if repo.created != 2 {
		t.Errorf("created %d skills total, want 2 (one seed, one new)", repo.created)
	}
	if !strings.Contains(got[1].Description, "SQL Joins") {
		t.Errorf("new skill should get an auto-generated description, got %q", got[1].Description)
	}
}
