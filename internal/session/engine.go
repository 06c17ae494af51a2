package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nqtien/examinator/internal/examapi"
	"github.com/nqtien/examinator/internal/ledger"
	"github.com/nqtien/examinator/internal/model"
	"github.com/nqtien/examinator/internal/scoring"
	"github.com/nqtien/examinator/internal/shuffle"
)

// Engine drives one student through one test attempt: it owns the phase
// machine, the shuffled question sequence, the cursor and the answer ledger.
// It is constructed per attempt and never shared across attempts, replacing
// the ambient global store of earlier designs.
//
// Scoring is authoritative on this side: the engine assembles the Result
// from its own ledger and the authoritative question set; the backend
// submission is archival.
type Engine struct {
	mu       sync.Mutex
	inFlight bool

	slug   string
	client examapi.Client
	ledger *ledger.Ledger
	rng    *rand.Rand

	sess          model.TestSession
	authoritative []model.Question
	byID          map[int64]model.Question
	result        *model.Result
}

// NewEngine builds an engine for one attempt at the test behind slug.
// mirror may be nil for a purely in-memory session; rng may be nil to use
// the shared entropy source.
func NewEngine(slug string, client examapi.Client, mirror ledger.Mirror, rng *rand.Rand) *Engine {
	return &Engine{
		slug:   slug,
		client: client,
		ledger: ledger.New(mirror),
		rng:    rng,
		sess:   model.TestSession{Phase: model.PhaseNotStarted},
	}
}

// Preview moves a fresh session into the preview sub-state. Optional; Start
// accepts either path.
func (e *Engine) Preview() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess.Phase != model.PhaseNotStarted {
		return fmt.Errorf("%w: preview from %s", ErrInvalidTransition, e.sess.Phase)
	}
	e.sess.Phase = model.PhasePreviewing
	return nil
}

// ConfirmStart moves from previewing to the confirmation sub-state.
func (e *Engine) ConfirmStart() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess.Phase != model.PhasePreviewing {
		return fmt.Errorf("%w: confirm start from %s", ErrInvalidTransition, e.sess.Phase)
	}
	e.sess.Phase = model.PhaseConfirmingStart
	return nil
}

// Start snapshots the authoritative question set, shuffles a fresh display
// order, scopes the ledger to the attempt and enters InProgress. Answers
// mirrored under the same attempt id by an interrupted run are rehydrated.
func (e *Engine) Start(attemptID int64, questions []model.Question, studentName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.sess.Phase {
	case model.PhaseNotStarted, model.PhasePreviewing, model.PhaseConfirmingStart:
	default:
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, e.sess.Phase)
	}
	if len(questions) == 0 {
		return ErrEmptyQuestionSet
	}

	shuffled, err := shuffle.Questions(questions, e.rng)
	if err != nil {
		return err
	}

	e.authoritative = questions
	e.byID = make(map[int64]model.Question, len(questions))
	for _, q := range questions {
		e.byID[q.ID] = q
	}

	e.ledger.Attach(attemptID)
	if err := e.ledger.Rehydrate(); err != nil {
		log.Warn().Err(err).Int64("attemptID", attemptID).Msg("Could not rehydrate mirrored answers, starting clean")
	}

	e.sess = model.TestSession{
		AttemptID:   attemptID,
		StudentName: studentName,
		Questions:   shuffled,
		Cursor:      0,
		Answers:     e.ledger.All(),
		Phase:       model.PhaseInProgress,
		StartedAt:   time.Now(),
	}
	e.result = nil

	log.Info().Int64("attemptID", attemptID).Int("questions", len(shuffled)).Str("student", studentName).Msg("Test session started")
	return nil
}

// RecordAnswer stores the selection for the question under the cursor,
// replacing any prior answer for it. Correctness is computed against the
// authoritative option set via the display slots' back-references.
func (e *Engine) RecordAnswer(selectedOptionIDs []int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight {
		return ErrSessionBusy
	}
	if e.sess.Phase != model.PhaseInProgress {
		return ErrNotInProgress
	}
	if len(selectedOptionIDs) == 0 {
		return ErrNoSelection
	}

	current := e.sess.CurrentQuestion()
	if current == nil {
		return ErrNotInProgress
	}
	if !current.IsMultipleChoice && len(selectedOptionIDs) > 1 {
		return ErrInvalidSelectionCardinality
	}
	for _, id := range selectedOptionIDs {
		if !current.HasOption(id) {
			return fmt.Errorf("%w: option %d, question %d", ErrUnknownOption, id, current.ID)
		}
	}

	authoritative := e.byID[current.ID]
	e.ledger.Upsert(model.Answer{
		QuestionID:        current.ID,
		SelectedOptionIDs: selectedOptionIDs,
		IsCorrect:         scoring.IsSelectionCorrect(authoritative, selectedOptionIDs),
	})
	e.sess.Answers = e.ledger.All()
	return nil
}

// Advance moves the cursor forward; on the last question it instead
// transitions to Submitting and runs the completion flow. Requires a
// recorded answer for the current question. Re-entrant calls while the
// submission is in flight get ErrSessionBusy rather than a double advance.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()

	if e.inFlight {
		e.mu.Unlock()
		return ErrSessionBusy
	}
	if e.sess.Phase != model.PhaseInProgress {
		e.mu.Unlock()
		return ErrNotInProgress
	}
	current := e.sess.CurrentQuestion()
	if current == nil {
		e.mu.Unlock()
		return ErrNotInProgress
	}
	if _, answered := e.ledger.Get(current.ID); !answered {
		e.mu.Unlock()
		return ErrAnswerRequired
	}

	if e.sess.Cursor < len(e.sess.Questions)-1 {
		e.sess.Cursor++
		e.mu.Unlock()
		return nil
	}

	e.inFlight = true
	e.sess.Phase = model.PhaseSubmitting
	e.sess.Answers = e.ledger.All()
	e.mu.Unlock()

	return e.finishSubmission(ctx)
}

// Retry re-runs the completion flow after a failed submission, reusing the
// intact ledger. Valid only from Failed.
func (e *Engine) Retry(ctx context.Context) error {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return ErrSessionBusy
	}
	if e.sess.Phase != model.PhaseFailed {
		e.mu.Unlock()
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, e.sess.Phase)
	}
	e.inFlight = true
	e.sess.Phase = model.PhaseSubmitting
	e.sess.Answers = e.ledger.All()
	e.mu.Unlock()

	return e.finishSubmission(ctx)
}

// finishSubmission performs the network submit outside the lock, then
// finalizes the session. On failure the mirror is deliberately retained so
// a retry resubmits the same data.
func (e *Engine) finishSubmission(ctx context.Context) error {
	submitErr := e.client.Submit(ctx, e.slug, e.sess.AttemptID, e.sess.Answers)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false

	if submitErr != nil {
		e.sess.Phase = model.PhaseFailed
		log.Error().Err(submitErr).Int64("attemptID", e.sess.AttemptID).Msg("Submission failed, session moved to failed phase")
		return submitErr
	}

	result, err := scoring.Assemble(&e.sess, e.authoritative)
	if err != nil {
		e.sess.Phase = model.PhaseFailed
		log.Error().Err(err).Int64("attemptID", e.sess.AttemptID).Msg("Result assembly failed")
		return err
	}

	e.result = result
	now := time.Now()
	e.sess.EndedAt = &now
	e.sess.Phase = model.PhaseCompleted
	e.ledger.Clear()

	log.Info().Int64("attemptID", e.sess.AttemptID).Int("score", result.Score).Int("percentage", result.Percentage).Msg("Test session completed")
	return nil
}

// Retreat moves the cursor back one question. Recorded answers are kept;
// re-answering the question the student returns to goes through
// RecordAnswer's upsert.
func (e *Engine) Retreat() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight {
		return ErrSessionBusy
	}
	if e.sess.Phase != model.PhaseInProgress {
		return ErrNotInProgress
	}
	if e.sess.Cursor == 0 {
		return fmt.Errorf("%w: already at the first question", ErrInvalidTransition)
	}
	e.sess.Cursor--
	return nil
}

// Cancel abandons the attempt from any non-completed phase, clearing the
// ledger and its durable mirror so the attempt cannot silently resume under
// a different identity later.
func (e *Engine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight {
		return ErrSessionBusy
	}
	if e.sess.Phase == model.PhaseCompleted {
		return fmt.Errorf("%w: cancel after completion", ErrInvalidTransition)
	}

	e.ledger.Clear()
	e.sess = model.TestSession{Phase: model.PhaseNotStarted}
	e.result = nil
	e.authoritative = nil
	e.byID = nil
	return nil
}

// Snapshot returns a copy of the session state for rendering.
func (e *Engine) Snapshot() model.TestSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.sess
	snap.Questions = append([]model.ShuffledQuestion(nil), e.sess.Questions...)
	snap.Answers = append([]model.Answer(nil), e.sess.Answers...)
	return snap
}

// CurrentQuestion returns the question under the cursor together with the
// previously selected option ids, if the student answered it before.
func (e *Engine) CurrentQuestion() (*model.ShuffledQuestion, []int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess.Phase != model.PhaseInProgress {
		return nil, nil, ErrNotInProgress
	}
	current := e.sess.CurrentQuestion()
	if current == nil {
		return nil, nil, ErrNotInProgress
	}
	q := *current
	q.Options = append([]model.ShuffledOption(nil), current.Options...)

	var selected []int64
	if ans, ok := e.ledger.Get(current.ID); ok {
		selected = append([]int64(nil), ans.SelectedOptionIDs...)
	}
	return &q, selected, nil
}

// Progress reports how far through the test the student is.
func (e *Engine) Progress() (answered, cursor, total int, percent float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	total = len(e.sess.Questions)
	if total == 0 {
		return 0, 0, 0, 0
	}
	return e.ledger.Len(), e.sess.Cursor, total, 100 * float64(e.sess.Cursor+1) / float64(total)
}

// Result returns the assembled result once the session completed.
func (e *Engine) Result() (*model.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess.Phase != model.PhaseCompleted || e.result == nil {
		return nil, ErrNoResult
	}
	return e.result, nil
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() model.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Phase
}
