package shuffle

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/nqtien/examinator/internal/model"
	"github.com/nqtien/examinator/internal/scoring"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{
			ID:   1,
			Text: "Capital of France?",
			Options: []model.Option{
				{ID: 10, Text: "Paris", IsCorrect: true},
				{ID: 11, Text: "Lyon"},
				{ID: 12, Text: "Nice"},
			},
		},
		{
			ID:               2,
			Text:             "Prime numbers?",
			IsMultipleChoice: true,
			Options: []model.Option{
				{ID: 20, Text: "2", IsCorrect: true},
				{ID: 21, Text: "3", IsCorrect: true},
				{ID: 22, Text: "4"},
			},
		},
		{
			ID:   3,
			Text: "1+1?",
			Options: []model.Option{
				{ID: 30, Text: "2", IsCorrect: true},
				{ID: 31, Text: "3"},
			},
		},
	}
}

func TestQuestionsIsAPermutationWithBackReferences(t *testing.T) {
	questions := sampleQuestions()
	rng := rand.New(rand.NewPCG(1, 2))

	shuffled, err := Questions(questions, rng)
	if err != nil {
		t.Fatalf("Questions returned error: %v", err)
	}
	if len(shuffled) != len(questions) {
		t.Fatalf("expected %d questions, got %d", len(questions), len(shuffled))
	}

	byID := make(map[int64]model.Question)
	for _, q := range questions {
		byID[q.ID] = q
	}

	seenQuestions := make(map[int64]bool)
	for _, sq := range shuffled {
		orig, ok := byID[sq.ID]
		if !ok {
			t.Fatalf("shuffled question %d not in input", sq.ID)
		}
		if seenQuestions[sq.ID] {
			t.Fatalf("question %d appears twice", sq.ID)
		}
		seenQuestions[sq.ID] = true

		if sq.Text != orig.Text || sq.IsMultipleChoice != orig.IsMultipleChoice {
			t.Errorf("question %d lost text or flag in projection", sq.ID)
		}
		if len(sq.Options) != len(orig.Options) {
			t.Fatalf("question %d: expected %d options, got %d", sq.ID, len(orig.Options), len(sq.Options))
		}

		// The display-index -> original-id mapping must be bijective.
		origIDs := make(map[int64]string)
		for _, opt := range orig.Options {
			origIDs[opt.ID] = opt.Text
		}
		seenOptions := make(map[int64]bool)
		for _, opt := range sq.Options {
			text, ok := origIDs[opt.OriginalID]
			if !ok {
				t.Fatalf("question %d: option id %d not in original set", sq.ID, opt.OriginalID)
			}
			if seenOptions[opt.OriginalID] {
				t.Fatalf("question %d: option id %d mapped twice", sq.ID, opt.OriginalID)
			}
			seenOptions[opt.OriginalID] = true
			if opt.Text != text {
				t.Errorf("question %d option %d: text %q does not match original %q", sq.ID, opt.OriginalID, opt.Text, text)
			}
		}
	}
}

func TestQuestionsCorrectnessRoundTrip(t *testing.T) {
	// Mapping displayed options back to original ids and re-deriving
	// correctness via the authoritative set must match evaluating against
	// the unshuffled question directly, for any permutation.
	questions := sampleQuestions()
	byID := make(map[int64]model.Question)
	for _, q := range questions {
		byID[q.ID] = q
	}

	for seed := uint64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		shuffled, err := Questions(questions, rng)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, sq := range shuffled {
			orig := byID[sq.ID]
			correct := orig.CorrectOptionIDs()

			// Select, via display slots, exactly the options that are
			// correct in the authoritative set.
			var selected []int64
			for _, opt := range sq.Options {
				for _, id := range correct {
					if opt.OriginalID == id {
						selected = append(selected, opt.OriginalID)
					}
				}
			}
			if !scoring.EqualIDSets(selected, correct) {
				t.Errorf("seed %d question %d: round-trip selection %v not equal to correct set %v", seed, sq.ID, selected, correct)
			}
		}
	}
}

func TestQuestionsRejectsTooFewOptions(t *testing.T) {
	questions := []model.Question{
		{ID: 1, Text: "only one way out", Options: []model.Option{{ID: 10, Text: "yes", IsCorrect: true}}},
	}
	_, err := Questions(questions, rand.New(rand.NewPCG(0, 0)))
	if !errors.Is(err, ErrMalformedQuestion) {
		t.Fatalf("expected ErrMalformedQuestion, got %v", err)
	}
}

func TestQuestionsEmptyInput(t *testing.T) {
	shuffled, err := Questions(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shuffled) != 0 {
		t.Fatalf("expected empty output, got %d", len(shuffled))
	}
}
