package shuffle

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/nqtien/examinator/internal/model"
)

// ErrMalformedQuestion is returned when a question cannot be presented,
// e.g. it has fewer than two options.
var ErrMalformedQuestion = errors.New("malformed question")

// Questions produces a uniformly random permutation of the question list
// and, independently, of each question's option list, as display-order
// projections with back-references to the original option ids. Pure function
// of its input and rng; re-invoke once per session start.
//
// rng may be nil, in which case the shared math/rand/v2 source is used.
func Questions(questions []model.Question, rng *rand.Rand) ([]model.ShuffledQuestion, error) {
	for _, q := range questions {
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d has %d options, need at least 2", ErrMalformedQuestion, q.ID, len(q.Options))
		}
	}

	out := make([]model.ShuffledQuestion, len(questions))
	for i, q := range questions {
		opts := make([]model.ShuffledOption, len(q.Options))
		for j, opt := range q.Options {
			opts[j] = model.ShuffledOption{OriginalID: opt.ID, Text: opt.Text}
		}
		permute(len(opts), rng, func(a, b int) { opts[a], opts[b] = opts[b], opts[a] })
		out[i] = model.ShuffledQuestion{
			ID:               q.ID,
			Text:             q.Text,
			IsMultipleChoice: q.IsMultipleChoice,
			Options:          opts,
		}
	}
	permute(len(out), rng, func(a, b int) { out[a], out[b] = out[b], out[a] })
	return out, nil
}

// permute runs an unbiased Fisher-Yates shuffle. The naive
// sort-by-random-comparator trick is biased and deliberately not used here.
func permute(n int, rng *rand.Rand, swap func(a, b int)) {
	if rng != nil {
		rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
