package scoring

import (
	"reflect"
	"testing"

	"github.com/nqtien/examinator/internal/model"
)

func TestEqualIDSets(t *testing.T) {
	tests := []struct {
		name string
		a    []int64
		b    []int64
		want bool
	}{
		{name: "same order", a: []int64{1, 2}, b: []int64{1, 2}, want: true},
		{name: "different order", a: []int64{2, 1}, b: []int64{1, 2}, want: true},
		{name: "duplicates ignored", a: []int64{1, 1, 2}, b: []int64{2, 1}, want: true},
		{name: "missing element", a: []int64{1}, b: []int64{1, 2}, want: false},
		{name: "extra element", a: []int64{1, 2, 3}, b: []int64{1, 2}, want: false},
		{name: "both empty", a: nil, b: []int64{}, want: true},
		{name: "one empty", a: nil, b: []int64{1}, want: false},
		{name: "large ids unaffected by lexicographic order", a: []int64{10, 9}, b: []int64{9, 10}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EqualIDSets(tc.a, tc.b); got != tc.want {
				t.Errorf("EqualIDSets(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func assembleFixture() (*model.TestSession, []model.Question) {
	authoritative := []model.Question{
		{
			ID:   1,
			Text: "single choice",
			Options: []model.Option{
				{ID: 1, Text: "right", IsCorrect: true},
				{ID: 2, Text: "wrong"},
			},
		},
		{
			ID:               2,
			Text:             "multi choice",
			IsMultipleChoice: true,
			Options: []model.Option{
				{ID: 3, Text: "right A", IsCorrect: true},
				{ID: 4, Text: "right B", IsCorrect: true},
				{ID: 5, Text: "wrong"},
			},
		},
	}

	session := &model.TestSession{
		AttemptID:   42,
		StudentName: "Aigerim",
		Questions: []model.ShuffledQuestion{
			{ID: 1, Text: "single choice", Options: []model.ShuffledOption{{OriginalID: 2}, {OriginalID: 1}}},
			{ID: 2, Text: "multi choice", IsMultipleChoice: true, Options: []model.ShuffledOption{{OriginalID: 5}, {OriginalID: 3}, {OriginalID: 4}}},
		},
		Answers: []model.Answer{
			{QuestionID: 1, SelectedOptionIDs: []int64{1}, IsCorrect: true},
			{QuestionID: 2, SelectedOptionIDs: []int64{3, 5}, IsCorrect: false},
		},
		Phase: model.PhaseSubmitting,
	}
	return session, authoritative
}

func TestAssembleScenarioA(t *testing.T) {
	// Q1 answered [1] (correct), Q2 answered [3,5] (missing 4, extra 5).
	session, authoritative := assembleFixture()

	result, err := Assemble(session, authoritative)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1", result.Score)
	}
	if result.TotalQuestions != 2 {
		t.Errorf("total = %d, want 2", result.TotalQuestions)
	}
	if result.Percentage != 50 {
		t.Errorf("percentage = %d, want 50", result.Percentage)
	}
	if len(result.Answers) != 2 {
		t.Fatalf("breakdown length = %d, want 2", len(result.Answers))
	}
	if !result.Answers[0].IsCorrect || result.Answers[1].IsCorrect {
		t.Errorf("breakdown correctness = %v/%v, want true/false", result.Answers[0].IsCorrect, result.Answers[1].IsCorrect)
	}
	if got := result.Answers[1].CorrectOptions; len(got) != 2 || got[0].ID != 3 || got[1].ID != 4 {
		t.Errorf("correct options for Q2 = %v, want ids 3 and 4", got)
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	session, authoritative := assembleFixture()

	first, err := Assemble(session, authoritative)
	if err != nil {
		t.Fatalf("first Assemble: %v", err)
	}
	second, err := Assemble(session, authoritative)
	if err != nil {
		t.Fatalf("second Assemble: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Assemble is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAssembleIgnoresStaleCachedFlag(t *testing.T) {
	session, authoritative := assembleFixture()

	// Corrupt the cached flags; the assembler must recompute from the
	// authoritative set.
	session.Answers[0].IsCorrect = false
	session.Answers[1].IsCorrect = true

	result, err := Assemble(session, authoritative)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1 despite corrupted flags", result.Score)
	}
	if !result.Answers[0].IsCorrect {
		t.Errorf("Q1 must be recomputed as correct")
	}
	if result.Answers[1].IsCorrect {
		t.Errorf("Q2 must be recomputed as incorrect")
	}
}

func TestAssembleMissingAuthoritativeQuestion(t *testing.T) {
	session, authoritative := assembleFixture()
	if _, err := Assemble(session, authoritative[:1]); err == nil {
		t.Fatal("expected error when a presented question is missing from the authoritative set")
	}
}

func TestAssemblePercentageRounding(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  int
	}{
		{name: "one of three rounds to 33", score: 1, total: 3, want: 33},
		{name: "two of three rounds to 67", score: 2, total: 3, want: 67},
		{name: "all correct", score: 4, total: 4, want: 100},
		{name: "none correct", score: 0, total: 4, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			session := &model.TestSession{AttemptID: 1, StudentName: "n"}
			var authoritative []model.Question
			for i := 0; i < tc.total; i++ {
				id := int64(i + 1)
				authoritative = append(authoritative, model.Question{
					ID:   id,
					Text: "q",
					Options: []model.Option{
						{ID: id * 10, IsCorrect: true},
						{ID: id*10 + 1},
					},
				})
				session.Questions = append(session.Questions, model.ShuffledQuestion{ID: id})
				selected := id*10 + 1 // wrong
				if i < tc.score {
					selected = id * 10 // right
				}
				session.Answers = append(session.Answers, model.Answer{QuestionID: id, SelectedOptionIDs: []int64{selected}})
			}

			result, err := Assemble(session, authoritative)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if result.Score != tc.score {
				t.Errorf("score = %d, want %d", result.Score, tc.score)
			}
			if result.Percentage != tc.want {
				t.Errorf("percentage = %d, want %d", result.Percentage, tc.want)
			}
		})
	}
}
