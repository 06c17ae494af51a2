package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/nqtien/examinator/internal/dto"
	"github.com/nqtien/examinator/internal/examapi"
	"github.com/nqtien/examinator/internal/ledger"
	"github.com/nqtien/examinator/internal/session"
)

var (
	// ErrSessionNotFound means the gateway session id is unknown (expired,
	// cancelled, or never issued).
	ErrSessionNotFound = errors.New("session not found")

	// ErrTestInactive rejects taking a test whose module is not activated.
	ErrTestInactive = errors.New("test is not currently active")
)

// TestFlowService drives test-taking sessions end to end: preview, begin,
// answering, navigation and completion. One engine per begun session, keyed
// by an opaque gateway session id; sessions never share state.
type TestFlowService interface {
	GetPreview(ctx context.Context, slug string) (*dto.TestPreviewDTO, error)
	BeginTest(ctx context.Context, slug, studentName string) (*dto.SessionStateDTO, error)
	CurrentQuestion(sessionID string) (*dto.CurrentQuestionDTO, error)
	RecordAnswer(sessionID string, selectedOptionIDs []int64) (*dto.SessionStateDTO, error)
	Advance(ctx context.Context, sessionID string) (*dto.SessionStateDTO, error)
	Retreat(sessionID string) (*dto.SessionStateDTO, error)
	Retry(ctx context.Context, sessionID string) (*dto.SessionStateDTO, error)
	Cancel(sessionID string) error
	Result(sessionID string) (*dto.ResultDTO, error)
}

type liveSession struct {
	id     string
	slug   string
	engine *session.Engine
}

type testFlowService struct {
	client examapi.Client
	mirror ledger.Mirror

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func NewTestFlowService(client examapi.Client, mirror ledger.Mirror) TestFlowService {
	return &testFlowService{
		client:   client,
		mirror:   mirror,
		sessions: make(map[string]*liveSession),
	}
}

func (s *testFlowService) GetPreview(ctx context.Context, slug string) (*dto.TestPreviewDTO, error) {
	preview, err := s.client.Preview(ctx, slug)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("GetPreview: failed to fetch preview")
		return nil, fmt.Errorf("failed to load test %q: %w", slug, err)
	}
	if !preview.IsActive {
		return nil, fmt.Errorf("%w: %q", ErrTestInactive, slug)
	}

	resp := &dto.TestPreviewDTO{
		Title:         preview.Title,
		Description:   preview.Description,
		IsActive:      preview.IsActive,
		QuestionCount: len(preview.Questions),
	}
	for _, q := range preview.Questions {
		var qDTO dto.QuestionDTO
		if err := copier.Copy(&qDTO, q.Scrubbed()); err != nil {
			log.Error().Err(err).Msg("GetPreview: failed to copy question to DTO")
			return nil, fmt.Errorf("error preparing preview response: %w", err)
		}
		resp.Questions = append(resp.Questions, qDTO)
	}
	return resp, nil
}

func (s *testFlowService) BeginTest(ctx context.Context, slug, studentName string) (*dto.SessionStateDTO, error) {
	// The preview carries the authoritative (correctness-bearing) question
	// set the engine scores against; the start call opens the attempt.
	preview, err := s.client.Preview(ctx, slug)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("BeginTest: failed to fetch preview")
		return nil, fmt.Errorf("failed to load test %q: %w", slug, err)
	}
	if !preview.IsActive {
		return nil, fmt.Errorf("%w: %q", ErrTestInactive, slug)
	}

	start, err := s.client.Start(ctx, slug, studentName)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("BeginTest: failed to open attempt")
		return nil, fmt.Errorf("failed to start attempt for %q: %w", slug, err)
	}
	attemptID := start.AttemptID
	if attemptID == 0 {
		// Local placeholder until the backend acknowledges one.
		attemptID = int64(uuid.New().ID())
		log.Warn().Int64("attemptID", attemptID).Str("slug", slug).Msg("Backend issued no attempt id, using local placeholder")
	}

	engine := session.NewEngine(slug, s.client, s.mirror, nil)
	if err := engine.Start(attemptID, preview.Questions, studentName); err != nil {
		return nil, err
	}

	live := &liveSession{id: uuid.NewString(), slug: slug, engine: engine}
	s.mu.Lock()
	s.sessions[live.id] = live
	s.mu.Unlock()

	log.Info().Str("sessionID", live.id).Int64("attemptID", attemptID).Str("slug", slug).Msg("BeginTest: session created")
	return s.state(live), nil
}

func (s *testFlowService) CurrentQuestion(sessionID string) (*dto.CurrentQuestionDTO, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	question, selected, err := live.engine.CurrentQuestion()
	if err != nil {
		return nil, err
	}

	qDTO := dto.QuestionDTO{
		ID:               question.ID,
		Text:             question.Text,
		IsMultipleChoice: question.IsMultipleChoice,
	}
	for _, opt := range question.Options {
		qDTO.Options = append(qDTO.Options, dto.OptionDTO{ID: opt.OriginalID, Text: opt.Text})
	}

	snap := live.engine.Snapshot()
	return &dto.CurrentQuestionDTO{
		Question:          qDTO,
		SelectedOptionIDs: selected,
		Cursor:            snap.Cursor,
		TotalQuestions:    len(snap.Questions),
	}, nil
}

func (s *testFlowService) RecordAnswer(sessionID string, selectedOptionIDs []int64) (*dto.SessionStateDTO, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := live.engine.RecordAnswer(selectedOptionIDs); err != nil {
		return nil, err
	}
	return s.state(live), nil
}

func (s *testFlowService) Advance(ctx context.Context, sessionID string) (*dto.SessionStateDTO, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := live.engine.Advance(ctx); err != nil {
		return nil, err
	}
	return s.state(live), nil
}

func (s *testFlowService) Retreat(sessionID string) (*dto.SessionStateDTO, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := live.engine.Retreat(); err != nil {
		return nil, err
	}
	return s.state(live), nil
}

func (s *testFlowService) Retry(ctx context.Context, sessionID string) (*dto.SessionStateDTO, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := live.engine.Retry(ctx); err != nil {
		return nil, err
	}
	return s.state(live), nil
}

func (s *testFlowService) Cancel(sessionID string) error {
	live, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if err := live.engine.Cancel(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	log.Info().Str("sessionID", sessionID).Msg("Session cancelled")
	return nil
}

func (s *testFlowService) Result(sessionID string) (*dto.ResultDTO, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	result, err := live.engine.Result()
	if err != nil {
		return nil, err
	}

	var resp dto.ResultDTO
	if err := copier.Copy(&resp, result); err != nil {
		log.Error().Err(err).Msg("Result: failed to copy result to DTO")
		return nil, fmt.Errorf("error preparing result response: %w", err)
	}
	return &resp, nil
}

func (s *testFlowService) lookup(sessionID string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
	}
	return live, nil
}

func (s *testFlowService) state(live *liveSession) *dto.SessionStateDTO {
	answered, cursor, total, percent := live.engine.Progress()
	snap := live.engine.Snapshot()
	return &dto.SessionStateDTO{
		SessionID:       live.id,
		AttemptID:       snap.AttemptID,
		Phase:           string(snap.Phase),
		Cursor:          cursor,
		TotalQuestions:  total,
		AnsweredCount:   answered,
		ProgressPercent: percent,
	}
}
