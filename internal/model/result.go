package model

// ResultAnswer is the per-question breakdown entry of a Result.
type ResultAnswer struct {
	QuestionID      int64    `json:"question_id"`
	QuestionText    string   `json:"question_text"`
	SelectedOptions []Option `json:"selected_options"`
	CorrectOptions  []Option `json:"correct_options"`
	IsCorrect       bool     `json:"is_correct"`
}

// Result is the scored outcome of one completed session. Read-only after
// assembly.
type Result struct {
	AttemptID      int64          `json:"attempt_id"`
	StudentName    string         `json:"student_name"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"`
	Answers        []ResultAnswer `json:"answers"`
}

// TestPreview is the by-slug view of an activated module, as served by the
// backend. Questions carry correctness only when the caller is entitled to
// it (authoring preview); student-facing uses must scrub.
type TestPreview struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	Questions   []Question `json:"questions"`
}

// TestStart is the backend's response to opening a new attempt.
type TestStart struct {
	AttemptID int64      `json:"attempt_id"`
	Questions []Question `json:"questions"`
}
