package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/learnloop/learnloop/internal/skill"
)

// SkillRepo provides access to the skill catalog. Lookup is always
// case-insensitive by name; names are immutable once created.
type SkillRepo interface {
	// GetOrCreate finds a skill by name (case-insensitive) or creates it.
	// A concurrent create of the same name is treated as benign: the
	// loser of the race re-fetches and returns the winner's row.
	GetOrCreate(ctx context.Context, s skill.Skill) (*skill.Skill, error)

	// GetByName finds a skill by name, case-insensitively.
	// Returns ErrNotFound if no such skill exists.
	GetByName(ctx context.Context, name string) (*skill.Skill, error)

	// GetByID finds a skill by id. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id string) (*skill.Skill, error)

	// List returns all skills ordered by name.
	List(ctx context.Context) ([]skill.Skill, error)
}

type skillRepo struct {
	db *sqlx.DB
}

// skillRow is the database shape of a skill; prerequisites are JSON.
type skillRow struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	NameKey       string    `db:"name_key"`
	Description   string    `db:"description"`
	Category      string    `db:"category"`
	Difficulty    string    `db:"difficulty"`
	ParentID      *string   `db:"parent_id"`
	Prerequisites string    `db:"prerequisites"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r *skillRepo) GetOrCreate(ctx context.Context, s skill.Skill) (*skill.Skill, error) {
	existing, err := r.GetByName(ctx, s.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Category == "" {
		s.Category = skill.CategoryGeneral
	}
	if s.Difficulty == "" {
		s.Difficulty = skill.DifficultyBeginner
	}
	prereqs, err := json.Marshal(s.Prerequisites)
	if err != nil {
		return nil, fmt.Errorf("marshal prerequisites: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO skills (id, name, name_key, description, category, difficulty, parent_id, prerequisites)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, skill.NameKey(s.Name), s.Description, s.Category,
		string(s.Difficulty), s.ParentID, string(prereqs),
	)
	if err != nil {
		// check-then-create race: another writer inserted the same
		// name_key first. Re-fetch and return that row.
		if isUniqueViolation(err) {
			return r.GetByName(ctx, s.Name)
		}
		return nil, fmt.Errorf("insert skill %q: %w", s.Name, err)
	}

	return r.GetByName(ctx, s.Name)
}

func (r *skillRepo) GetByName(ctx context.Context, name string) (*skill.Skill, error) {
	var row skillRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM skills WHERE name_key = ?`, skill.NameKey(name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get skill by name %q: %w", name, err)
	}
	return rowToSkill(row)
}

func (r *skillRepo) GetByID(ctx context.Context, id string) (*skill.Skill, error) {
	var row skillRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM skills WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get skill %s: %w", id, err)
	}
	return rowToSkill(row)
}

func (r *skillRepo) List(ctx context.Context) ([]skill.Skill, error) {
	var rows []skillRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM skills ORDER BY name_key`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	out := make([]skill.Skill, 0, len(rows))
	for _, row := range rows {
		s, err := rowToSkill(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func rowToSkill(row skillRow) (*skill.Skill, error) {
	var prereqs []string
	if row.Prerequisites != "" {
		if err := json.Unmarshal([]byte(row.Prerequisites), &prereqs); err != nil {
			return nil, fmt.Errorf("unmarshal prerequisites for %s: %w", row.ID, err)
		}
	}
	return &skill.Skill{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		Category:      row.Category,
		Difficulty:    skill.Difficulty(row.Difficulty),
		ParentID:      row.ParentID,
		Prerequisites: prereqs,
		CreatedAt:     row.CreatedAt,
	}, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
