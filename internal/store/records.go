package store

import "time"

// MasteryRecord is a learner's current standing on one skill.
// Level stays in [0,100], SuccessRate in [0,1], ReviewInterval in [1,60].
// Status is derived from (level, success rate) on every update; the
// persisted value is only a cache of that computation.
type MasteryRecord struct {
	UserID              string     `db:"user_id"`
	SkillID             string     `db:"skill_id"`
	Level               int        `db:"level"`
	Status              string     `db:"status"`
	SuccessRate         float64    `db:"success_rate"`
	PracticeCount       int        `db:"practice_count"`
	ConsecutiveFailures int        `db:"consecutive_failures"`
	LastPracticedAt     *time.Time `db:"last_practiced_at"`
	NextReviewAt        *time.Time `db:"next_review_at"`
	ReviewInterval      int        `db:"review_interval"`
	NeedsReview         bool       `db:"needs_review"`
	MasteredAt          *time.Time `db:"mastered_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// ReviewSchedule is the authoritative spaced-repetition state for one
// (user, skill) pair. The review fields mirrored on MasteryRecord are a
// derived view of this record.
type ReviewSchedule struct {
	UserID             string     `db:"user_id"`
	SkillID            string     `db:"skill_id"`
	CurrentInterval    int        `db:"current_interval"`
	NextReviewAt       time.Time  `db:"next_review_at"`
	LastReviewedAt     *time.Time `db:"last_reviewed_at"`
	ReviewCount        int        `db:"review_count"`
	AverageReviewScore float64    `db:"average_review_score"`
	IsRetained         bool       `db:"is_retained"`
}

// DueReview is a review schedule joined with its skill name and the
// learner's current mastery level, as needed by due-list consumers.
type DueReview struct {
	ReviewSchedule
	SkillName    string `db:"skill_name"`
	MasteryLevel int    `db:"mastery_level"`
}

// StrugglingCandidate is a mastery record joined with its skill name.
type StrugglingCandidate struct {
	MasteryRecord
	SkillName string `db:"skill_name"`
}

// PracticeEventData captures one applied level update for the audit log.
type PracticeEventData struct {
	UserID       string
	SkillID      string
	Performance  int
	PracticeType string
	LevelBefore  int
	LevelAfter   int
}

// LLMEvent is a persisted generative API call event.
type LLMEvent struct {
	ID           int64     `db:"id"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	CreatedAt    time.Time `db:"created_at"`
}

// LLMRequestEventData captures a single generative API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}
