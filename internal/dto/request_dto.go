package dto

// BeginTestRequest opens a new attempt for an activated test.
type BeginTestRequest struct {
	StudentName string `json:"student_name" binding:"required"`
}

// AnswerRequest records the selection for the question under the cursor.
type AnswerRequest struct {
	SelectedOptionIDs []int64 `json:"selected_option_ids" binding:"required,min=1"`
}
