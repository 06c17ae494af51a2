package ledger

import (
	"github.com/rs/zerolog/log"

	"github.com/nqtien/examinator/internal/model"
)

// Ledger is the ordered, question-keyed answer accumulator of one session.
// Upsert replaces by question id; All preserves first-write order. Every
// mutation is mirrored synchronously to the attempt-scoped durable store,
// so a reload mid-test can rehydrate answered questions. The mirror is
// advisory: a failed mirror write degrades durability, not correctness.
type Ledger struct {
	attemptID int64
	order     []int64
	byID      map[int64]model.Answer
	mirror    Mirror
}

func New(mirror Mirror) *Ledger {
	if mirror == nil {
		mirror = NoopMirror{}
	}
	return &Ledger{byID: make(map[int64]model.Answer), mirror: mirror}
}

// Attach scopes the ledger (and its mirror writes) to one attempt and drops
// any state left over from a previous one.
func (l *Ledger) Attach(attemptID int64) {
	l.attemptID = attemptID
	l.order = nil
	l.byID = make(map[int64]model.Answer)
}

// Rehydrate seeds the ledger from the mirror's snapshot for the attached
// attempt. Used on start so a reloaded client resumes with its answers.
func (l *Ledger) Rehydrate() error {
	answers, err := l.mirror.Load(l.attemptID)
	if err != nil {
		return err
	}
	for _, ans := range answers {
		l.put(ans)
	}
	return nil
}

// Upsert records an answer, replacing any prior entry for the same question,
// and mirrors the new state.
func (l *Ledger) Upsert(answer model.Answer) {
	l.put(answer)
	if err := l.mirror.Save(l.attemptID, l.All()); err != nil {
		log.Warn().Err(err).Int64("attemptID", l.attemptID).Msg("Failed to mirror answer ledger")
	}
}

func (l *Ledger) put(answer model.Answer) {
	if _, exists := l.byID[answer.QuestionID]; !exists {
		l.order = append(l.order, answer.QuestionID)
	}
	l.byID[answer.QuestionID] = answer
}

// Get returns the answer for a question, if one was recorded.
func (l *Ledger) Get(questionID int64) (model.Answer, bool) {
	ans, ok := l.byID[questionID]
	return ans, ok
}

// All returns the answers in first-write order. Updating an existing answer
// does not move it.
func (l *Ledger) All() []model.Answer {
	out := make([]model.Answer, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.order)
}

// Clear empties the ledger and its durable mirror. Called on cancel and
// after an acknowledged submission.
func (l *Ledger) Clear() {
	l.order = nil
	l.byID = make(map[int64]model.Answer)
	if err := l.mirror.Clear(l.attemptID); err != nil {
		log.Warn().Err(err).Int64("attemptID", l.attemptID).Msg("Failed to clear answer mirror")
	}
}
