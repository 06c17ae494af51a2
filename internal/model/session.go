package model

import "time"

// Phase is the lifecycle state of a test session.
type Phase string

const (
	PhaseNotStarted      Phase = "not_started"
	PhasePreviewing      Phase = "previewing"
	PhaseConfirmingStart Phase = "confirming_start"
	PhaseInProgress      Phase = "in_progress"
	PhaseSubmitting      Phase = "submitting"
	PhaseCompleted       Phase = "completed"
	PhaseFailed          Phase = "failed"
)

// Answer is one recorded selection, keyed uniquely by QuestionID within a
// session. Recording again for the same question replaces the prior entry.
type Answer struct {
	QuestionID        int64   `json:"question_id"`
	SelectedOptionIDs []int64 `json:"selected_option_ids"`
	IsCorrect         bool    `json:"is_correct"`
}

// TestSession is one student's pass through an activated module's test. It
// is mutated only by the session engine.
type TestSession struct {
	AttemptID   int64              `json:"attempt_id"`
	StudentName string             `json:"student_name"`
	Questions   []ShuffledQuestion `json:"questions"`
	Cursor      int                `json:"cursor"`
	Answers     []Answer           `json:"answers"`
	Phase       Phase              `json:"phase"`
	StartedAt   time.Time          `json:"started_at"`
	EndedAt     *time.Time         `json:"ended_at,omitempty"`
}

// CurrentQuestion returns the question under the cursor, or nil when the
// session holds no questions.
func (s *TestSession) CurrentQuestion() *ShuffledQuestion {
	if s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Cursor]
}
