package model

// Option is one selectable choice of a Question. IsCorrect is authoritative
// data and must never be handed to a student client; see Question.Scrubbed.
type Option struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is the authoritative, server-assigned form of a question,
// including correctness metadata. A session snapshots its question set at
// start time; questions are immutable afterwards.
type Question struct {
	ID               int64    `json:"id"`
	Text             string   `json:"text"`
	IsMultipleChoice bool     `json:"is_multiple_choice"`
	Options          []Option `json:"options"`
}

// CorrectOptionIDs returns the ids of all options flagged correct.
func (q Question) CorrectOptionIDs() []int64 {
	var ids []int64
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// Scrubbed returns a copy of the question with all correctness flags forced
// to false. The question payload is visible to the student, so this is a
// confidentiality requirement, not cosmetics.
func (q Question) Scrubbed() Question {
	out := q
	out.Options = make([]Option, len(q.Options))
	for i, opt := range q.Options {
		opt.IsCorrect = false
		out.Options[i] = opt
	}
	return out
}

// ShuffledOption is one display slot of a shuffled question. OriginalID is
// the back-reference used to reconcile a selection against the authoritative
// option set regardless of display order.
type ShuffledOption struct {
	OriginalID int64  `json:"id"`
	Text       string `json:"text"`
}

// ShuffledQuestion is the per-session, display-order projection of a
// Question. It carries no correctness data and lives only as long as the
// session that produced it.
type ShuffledQuestion struct {
	ID               int64            `json:"id"`
	Text             string           `json:"text"`
	IsMultipleChoice bool             `json:"is_multiple_choice"`
	Options          []ShuffledOption `json:"options"`
}

// HasOption reports whether id is one of the question's display options.
func (q ShuffledQuestion) HasOption(id int64) bool {
	for _, opt := range q.Options {
		if opt.OriginalID == id {
			return true
		}
	}
	return false
}
