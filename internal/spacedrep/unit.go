package spacedrep

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Review-unit insertion thresholds. These are product constants, not
// derived values.
const (
	// InsertOverdueThreshold inserts a review unit once this many
	// reviews are overdue.
	InsertOverdueThreshold = 3

	// InsertUpcomingThreshold inserts a review unit once this many
	// reviews fall due within InsertUpcomingWindowDays.
	InsertUpcomingThreshold = 5

	// InsertUpcomingWindowDays is the look-ahead window for the
	// upcoming-reviews threshold.
	InsertUpcomingWindowDays = 2
)

// InsertDecision says whether a dedicated review unit should be inserted
// into a learning plan, and for which skills.
type InsertDecision struct {
	Insert       bool
	Reason       string
	Skills       []DueSkill
	SuggestedDay int
}

// ShouldInsertReviewUnit decides whether the plan for currentDay needs a
// dedicated review unit: either enough reviews are already overdue, or
// enough fall due in the next two days. The inserted unit is suggested
// for the following day.
func (s *Scheduler) ShouldInsertReviewUnit(ctx context.Context, userID string, allowlist []string, currentDay int, now time.Time) (*InsertDecision, error) {
	now = now.UTC()
	horizon := now.AddDate(0, 0, InsertUpcomingWindowDays)

	rows, err := s.reviews.DueBefore(ctx, userID, horizon, allowlist)
	if err != nil {
		return nil, fmt.Errorf("query upcoming reviews: %w", err)
	}

	var overdue, upcoming []DueSkill
	for _, row := range rows {
		entry := DueSkill{
			SkillID:      row.SkillID,
			SkillName:    row.SkillName,
			MasteryLevel: row.MasteryLevel,
			NextReviewAt: row.NextReviewAt,
			IsOverdue:    row.NextReviewAt.Before(now),
		}
		if entry.IsOverdue {
			overdue = append(overdue, entry)
		}
		upcoming = append(upcoming, entry)
	}

	if len(overdue) >= InsertOverdueThreshold {
		return &InsertDecision{
			Insert:       true,
			Reason:       fmt.Sprintf("%d overdue reviews", len(overdue)),
			Skills:       overdue,
			SuggestedDay: currentDay + 1,
		}, nil
	}
	if len(upcoming) >= InsertUpcomingThreshold {
		return &InsertDecision{
			Insert:       true,
			Reason:       fmt.Sprintf("%d reviews due within %d days", len(upcoming), InsertUpcomingWindowDays),
			Skills:       upcoming,
			SuggestedDay: currentDay + 1,
		}, nil
	}

	return &InsertDecision{Insert: false}, nil
}

// ReviewUnit is a scaffold handed to the content-planning collaborator,
// which materializes the actual learner-facing unit.
type ReviewUnit struct {
	Title              string
	Description        string
	EstimatedMinutes   int
	TargetSkills       []TargetSkill
	Tasks              []MicroTask
	AcceptanceCriteria []string
	SuggestedDay       int
	CreatedAt          time.Time
}

// TargetSkill names a skill the review unit should bring to TargetLevel.
type TargetSkill struct {
	SkillID     string
	Name        string
	TargetLevel int
}

// MicroTask is one fixed-structure exercise within a review unit.
type MicroTask struct {
	Title       string
	Description string
}

// BuildReviewUnit produces the review-unit scaffold for the given due
// skills: a short title from the first two skill names, one micro-task
// per skill, a 30-minute estimate, and a fixed acceptance checklist.
// Per-skill target level is the current level plus ten, capped at 100.
func (s *Scheduler) BuildReviewUnit(skills []DueSkill, suggestedDay int, now time.Time) *ReviewUnit {
	unit := &ReviewUnit{
		Title:            reviewUnitTitle(skills),
		Description:      "Spaced-repetition review of previously learned skills.",
		EstimatedMinutes: 30,
		AcceptanceCriteria: []string{
			"All review exercises completed",
			"Each target skill scored 70 or above",
			"No skill left with an overdue review",
		},
		SuggestedDay: suggestedDay,
		CreatedAt:    now.UTC(),
	}

	for _, ds := range skills {
		target := ds.MasteryLevel + 10
		if target > 100 {
			target = 100
		}
		unit.TargetSkills = append(unit.TargetSkills, TargetSkill{
			SkillID:     ds.SkillID,
			Name:        ds.SkillName,
			TargetLevel: target,
		})
		unit.Tasks = append(unit.Tasks, MicroTask{
			Title:       fmt.Sprintf("Review: %s", ds.SkillName),
			Description: fmt.Sprintf("Work through a short exercise set on %s and check your answers.", ds.SkillName),
		})
	}

	return unit
}

func reviewUnitTitle(skills []DueSkill) string {
	names := make([]string, 0, 2)
	for i, ds := range skills {
		if i == 2 {
			break
		}
		names = append(names, ds.SkillName)
	}
	title := "Review: " + strings.Join(names, ", ")
	if extra := len(skills) - 2; extra > 0 {
		title += fmt.Sprintf(" +%d more", extra)
	}
	return title
}
