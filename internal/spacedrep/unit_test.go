package spacedrep

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestShouldInsertReviewUnit_OverdueThreshold(t *testing.T) {
	repo := newFakeReviewRepo()
	for i := 0; i < InsertOverdueThreshold; i++ {
		repo.addDue("u1", fmt.Sprintf("s%d", i), testNow.AddDate(0, 0, -1))
	}
	s := NewScheduler(repo)

	dec, err := s.ShouldInsertReviewUnit(context.Background(), "u1", nil, 12, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Insert {
		t.Fatal("three overdue reviews should trigger insertion")
	}
	if dec.SuggestedDay != 13 {
		t.Errorf("suggestedDay = %d, want 13", dec.SuggestedDay)
	}
	if len(dec.Skills) != InsertOverdueThreshold {
		t.Errorf("got %d skills, want %d", len(dec.Skills), InsertOverdueThreshold)
	}
	if !strings.Contains(dec.Reason, "overdue") {
		t.Errorf("reason = %q, want overdue explanation", dec.Reason)
	}
}

func TestShouldInsertReviewUnit_UpcomingThreshold(t *testing.T) {
	repo := newFakeReviewRepo()
	// Two overdue (below the overdue threshold) plus three due within
	// the window: five upcoming in total.
	repo.addDue("u1", "o1", testNow.AddDate(0, 0, -1))
	repo.addDue("u1", "o2", testNow.AddDate(0, 0, -1))
	for i := 0; i < 3; i++ {
		repo.addDue("u1", fmt.Sprintf("w%d", i), testNow.AddDate(0, 0, 1))
	}
	s := NewScheduler(repo)

	dec, err := s.ShouldInsertReviewUnit(context.Background(), "u1", nil, 5, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Insert {
		t.Fatal("five reviews due within two days should trigger insertion")
	}
	if len(dec.Skills) != 5 {
		t.Errorf("got %d skills, want all 5 upcoming", len(dec.Skills))
	}
}

func TestShouldInsertReviewUnit_BelowThresholds(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.addDue("u1", "o1", testNow.AddDate(0, 0, -1))
	repo.addDue("u1", "o2", testNow.AddDate(0, 0, -1))
	repo.addDue("u1", "w1", testNow.AddDate(0, 0, 1))
	s := NewScheduler(repo)

	dec, err := s.ShouldInsertReviewUnit(context.Background(), "u1", nil, 5, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Insert {
		t.Fatalf("two overdue and three upcoming must not trigger insertion: %+v", dec)
	}
}

func TestBuildReviewUnit(t *testing.T) {
	s := NewScheduler(newFakeReviewRepo())
	skills := []DueSkill{
		{SkillID: "s1", SkillName: "SQL Joins", MasteryLevel: 55},
		{SkillID: "s2", SkillName: "Indexes", MasteryLevel: 95},
		{SkillID: "s3", SkillName: "Transactions", MasteryLevel: 40},
	}

	unit := s.BuildReviewUnit(skills, 13, testNow)
	if unit.Title != "Review: SQL Joins, Indexes +1 more" {
		t.Errorf("title = %q", unit.Title)
	}
	if unit.EstimatedMinutes != 30 {
		t.Errorf("estimate = %d, want 30", unit.EstimatedMinutes)
	}
	if unit.SuggestedDay != 13 {
		t.Errorf("suggestedDay = %d, want 13", unit.SuggestedDay)
	}
	if len(unit.Tasks) != 3 || len(unit.TargetSkills) != 3 {
		t.Fatalf("got %d tasks and %d targets, want 3 each", len(unit.Tasks), len(unit.TargetSkills))
	}
	if unit.TargetSkills[0].TargetLevel != 65 {
		t.Errorf("target for level 55 = %d, want 65", unit.TargetSkills[0].TargetLevel)
	}
	if unit.TargetSkills[1].TargetLevel != 100 {
		t.Errorf("target for level 95 = %d, want capped 100", unit.TargetSkills[1].TargetLevel)
	}
	if len(unit.AcceptanceCriteria) != 3 {
		t.Errorf("got %d acceptance criteria, want 3", len(unit.AcceptanceCriteria))
	}
}

func TestBuildReviewUnit_ShortTitleForTwoSkills(t *testing.T) {
	s := NewScheduler(newFakeReviewRepo())
	unit := s.BuildReviewUnit([]DueSkill{
		{SkillID: "s1", SkillName: "SQL Joins"},
		{SkillID: "s2", SkillName: "Indexes"},
	}, 1, testNow)
	if unit.Title != "Review: SQL Joins, Indexes" {
		t.Errorf("title = %q", unit.Title)
	}
}
