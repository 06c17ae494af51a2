package session

import "errors"

var (
	// ErrEmptyQuestionSet is fatal to Start: there is nothing to present.
	ErrEmptyQuestionSet = errors.New("empty question set")

	// ErrNoSelection rejects recording an answer with no options selected.
	ErrNoSelection = errors.New("no option selected")

	// ErrInvalidSelectionCardinality rejects a multi-option selection for a
	// single-choice question.
	ErrInvalidSelectionCardinality = errors.New("multiple options selected for a single-choice question")

	// ErrUnknownOption rejects a selection referring to an option that is
	// not part of the current question.
	ErrUnknownOption = errors.New("selected option does not belong to the current question")

	// ErrAnswerRequired rejects advancing past a question that has no
	// recorded answer.
	ErrAnswerRequired = errors.New("answer required before advancing")

	// ErrSessionBusy rejects mutation while a network transition is in
	// flight. Callers should disable controls, not retry-loop.
	ErrSessionBusy = errors.New("session transition in progress")

	// ErrNotInProgress rejects navigation and answering outside the
	// in-progress phase.
	ErrNotInProgress = errors.New("session is not in progress")

	// ErrInvalidTransition rejects an operation from a phase it is not
	// defined for (e.g. Start on a running session, Retry when not failed).
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrNoResult is returned when a result is requested before the
	// session completed.
	ErrNoResult = errors.New("session has no result yet")
)
