package dto

// OptionDTO is a student-visible option. Correctness is never present here;
// the projection is built from scrubbed questions.
type OptionDTO struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type QuestionDTO struct {
	ID               int64       `json:"id"`
	Text             string      `json:"text"`
	IsMultipleChoice bool        `json:"is_multiple_choice"`
	Options          []OptionDTO `json:"options"`
}

// TestPreviewDTO is what a student sees before confirming the start.
type TestPreviewDTO struct {
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	IsActive      bool          `json:"is_active"`
	QuestionCount int           `json:"question_count"`
	Questions     []QuestionDTO `json:"questions"`
}

// SessionStateDTO reports where a session stands after an operation.
type SessionStateDTO struct {
	SessionID       string  `json:"session_id"`
	AttemptID       int64   `json:"attempt_id"`
	Phase           string  `json:"phase"`
	Cursor          int     `json:"cursor"`
	TotalQuestions  int     `json:"total_questions"`
	AnsweredCount   int     `json:"answered_count"`
	ProgressPercent float64 `json:"progress_percent"`
}

// CurrentQuestionDTO carries the question under the cursor plus the
// student's previous selection for it, if any, so a UI can pre-select.
type CurrentQuestionDTO struct {
	Question          QuestionDTO `json:"question"`
	SelectedOptionIDs []int64     `json:"selected_option_ids,omitempty"`
	Cursor            int         `json:"cursor"`
	TotalQuestions    int         `json:"total_questions"`
}

// ResultOptionDTO appears in the post-completion breakdown, where revealing
// correctness is intended.
type ResultOptionDTO struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type ResultAnswerDTO struct {
	QuestionID      int64             `json:"question_id"`
	QuestionText    string            `json:"question_text"`
	SelectedOptions []ResultOptionDTO `json:"selected_options"`
	CorrectOptions  []ResultOptionDTO `json:"correct_options"`
	IsCorrect       bool              `json:"is_correct"`
}

type ResultDTO struct {
	AttemptID      int64             `json:"attempt_id"`
	StudentName    string            `json:"student_name"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	Percentage     int               `json:"percentage"`
	Answers        []ResultAnswerDTO `json:"answers"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
