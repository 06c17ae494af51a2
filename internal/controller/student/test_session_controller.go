package student

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nqtien/examinator/internal/dto"
	"github.com/nqtien/examinator/internal/examapi"
	"github.com/nqtien/examinator/internal/service"
	"github.com/nqtien/examinator/internal/session"
)

type TestSessionController struct {
	flow service.TestFlowService
}

func NewTestSessionController(flow service.TestFlowService) *TestSessionController {
	return &TestSessionController{flow: flow}
}

// GetPreview godoc
// @Summary (Student) Preview an activated test by slug
// @Description Title, description and correctness-scrubbed questions of the shared test.
// @Tags Student - Test Taking
// @Produce json
// @Param slug path string true "Public test slug"
// @Success 200 {object} dto.TestPreviewDTO
// @Failure 403 {object} dto.ErrorResponse "Test is not active"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /t/{slug}/preview [get]
func (c *TestSessionController) GetPreview(ctx *gin.Context) {
	preview, err := c.flow.GetPreview(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		log.Warn().Err(err).Str("slug", ctx.Param("slug")).Msg("GetPreview failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, preview)
}

// BeginTest godoc
// @Summary (Student) Begin a test attempt
// @Description Opens an attempt, shuffles the questions and returns the new session state.
// @Tags Student - Test Taking
// @Accept json
// @Produce json
// @Param slug path string true "Public test slug"
// @Param begin_data body dto.BeginTestRequest true "Student identity"
// @Success 201 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or malformed test"
// @Failure 403 {object} dto.ErrorResponse "Test is not active"
// @Router /t/{slug}/sessions [post]
func (c *TestSessionController) BeginTest(ctx *gin.Context) {
	var req dto.BeginTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	state, err := c.flow.BeginTest(ctx.Request.Context(), ctx.Param("slug"), req.StudentName)
	if err != nil {
		log.Error().Err(err).Str("slug", ctx.Param("slug")).Msg("BeginTest failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

// GetCurrentQuestion godoc
// @Summary (Student) Get the question under the cursor
// @Tags Student - Test Taking
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.CurrentQuestionDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown session"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{session_id}/question [get]
func (c *TestSessionController) GetCurrentQuestion(ctx *gin.Context) {
	current, err := c.flow.CurrentQuestion(ctx.Param("session_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, current)
}

// RecordAnswer godoc
// @Summary (Student) Record the answer for the current question
// @Description Replaces any previous answer for the same question (upsert).
// @Tags Student - Test Taking
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer_data body dto.AnswerRequest true "Selected option ids"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Empty, oversized or foreign selection"
// @Failure 404 {object} dto.ErrorResponse "Unknown session"
// @Failure 409 {object} dto.ErrorResponse "Session busy or not in progress"
// @Router /sessions/{session_id}/answer [post]
func (c *TestSessionController) RecordAnswer(ctx *gin.Context) {
	var req dto.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	state, err := c.flow.RecordAnswer(ctx.Param("session_id"), req.SelectedOptionIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// Advance godoc
// @Summary (Student) Move to the next question or submit
// @Description On the last question this submits the attempt and completes the session.
// @Tags Student - Test Taking
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Answer required before advancing"
// @Failure 404 {object} dto.ErrorResponse "Unknown session"
// @Failure 409 {object} dto.ErrorResponse "Session busy or not in progress"
// @Failure 502 {object} dto.ErrorResponse "Submission failed; session moved to failed, retry available"
// @Router /sessions/{session_id}/advance [post]
func (c *TestSessionController) Advance(ctx *gin.Context) {
	state, err := c.flow.Advance(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		log.Warn().Err(err).Str("sessionID", ctx.Param("session_id")).Msg("Advance failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// Retreat godoc
// @Summary (Student) Move back to the previous question
// @Tags Student - Test Taking
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown session"
// @Failure 409 {object} dto.ErrorResponse "Already at the first question or session busy"
// @Router /sessions/{session_id}/retreat [post]
func (c *TestSessionController) Retreat(ctx *gin.Context) {
	state, err := c.flow.Retreat(ctx.Param("session_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// Retry godoc
// @Summary (Student) Retry a failed submission
// @Description Resubmits the recorded answers after a submission failure; no answers are re-entered.
// @Tags Student - Test Taking
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown session"
// @Failure 409 {object} dto.ErrorResponse "Session is not in the failed phase"
// @Failure 502 {object} dto.ErrorResponse "Submission failed again"
// @Router /sessions/{session_id}/retry [post]
func (c *TestSessionController) Retry(ctx *gin.Context) {
	state, err := c.flow.Retry(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		log.Warn().Err(err).Str("sessionID", ctx.Param("session_id")).Msg("Retry failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// Cancel godoc
// @Summary (Student) Abandon the attempt
// @Description Clears the session and its durable answer backup.
// @Tags Student - Test Taking
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 204 "Session cancelled"
// @Failure 404 {object} dto.ErrorResponse "Unknown session"
// @Router /sessions/{session_id} [delete]
func (c *TestSessionController) Cancel(ctx *gin.Context) {
	if err := c.flow.Cancel(ctx.Param("session_id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetResult godoc
// @Summary (Student) Scored result of a completed session
// @Tags Student - Test Taking
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.ResultDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown session or no result yet"
// @Router /sessions/{session_id}/result [get]
func (c *TestSessionController) GetResult(ctx *gin.Context) {
	result, err := c.flow.Result(ctx.Param("session_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, session.ErrNoResult):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTestInactive):
		status = http.StatusForbidden
	case errors.Is(err, session.ErrNoSelection),
		errors.Is(err, session.ErrInvalidSelectionCardinality),
		errors.Is(err, session.ErrUnknownOption),
		errors.Is(err, session.ErrAnswerRequired),
		errors.Is(err, session.ErrEmptyQuestionSet):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrSessionBusy),
		errors.Is(err, session.ErrNotInProgress),
		errors.Is(err, session.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, examapi.ErrSubmissionFailed), errors.Is(err, examapi.ErrResultFetchFailed):
		status = http.StatusBadGateway
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}
