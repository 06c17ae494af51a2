package scoring

import (
	"fmt"
	"math"
	"slices"

	"github.com/nqtien/examinator/internal/model"
)

// EqualIDSets reports whether two id lists denote the same set. Order and
// duplicates are ignored; this is the single correctness comparison used
// everywhere, replacing fragile stringify-after-sort array comparisons.
func EqualIDSets(a, b []int64) bool {
	return slices.Equal(canonical(a), canonical(b))
}

// canonical is the sorted, duplicate-free form of an id list.
func canonical(ids []int64) []int64 {
	unique := dedupe(ids)
	slices.Sort(unique)
	return unique
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	var out []int64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// IsSelectionCorrect evaluates a selection against the authoritative
// question, ignoring any cached correctness flag.
func IsSelectionCorrect(q model.Question, selectedOptionIDs []int64) bool {
	return EqualIDSets(selectedOptionIDs, q.CorrectOptionIDs())
}

// Assemble builds the Result for a session from its answer ledger and the
// authoritative (unshuffled, correctness-bearing) question set. Correctness
// is recomputed here from current data; a stale flag recorded earlier can
// never leak into the result. Deterministic and pure: calling it twice on
// the same inputs yields identical output.
func Assemble(session *model.TestSession, authoritative []model.Question) (*model.Result, error) {
	byID := make(map[int64]model.Question, len(authoritative))
	for _, q := range authoritative {
		byID[q.ID] = q
	}

	answers := make(map[int64]model.Answer, len(session.Answers))
	for _, ans := range session.Answers {
		answers[ans.QuestionID] = ans
	}

	result := &model.Result{
		AttemptID:      session.AttemptID,
		StudentName:    session.StudentName,
		TotalQuestions: len(session.Questions),
		Answers:        make([]model.ResultAnswer, 0, len(session.Questions)),
	}

	// Breakdown follows presentation order.
	for _, sq := range session.Questions {
		q, ok := byID[sq.ID]
		if !ok {
			return nil, fmt.Errorf("question %d was presented but is missing from the authoritative set", sq.ID)
		}

		ans := answers[sq.ID]
		correct := IsSelectionCorrect(q, ans.SelectedOptionIDs)

		entry := model.ResultAnswer{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			IsCorrect:    correct,
		}
		for _, opt := range q.Options {
			if slices.Contains(ans.SelectedOptionIDs, opt.ID) {
				entry.SelectedOptions = append(entry.SelectedOptions, opt)
			}
			if opt.IsCorrect {
				entry.CorrectOptions = append(entry.CorrectOptions, opt)
			}
		}
		if correct {
			result.Score++
		}
		result.Answers = append(result.Answers, entry)
	}

	if result.TotalQuestions > 0 {
		result.Percentage = int(math.Round(100 * float64(result.Score) / float64(result.TotalQuestions)))
	}
	return result, nil
}
