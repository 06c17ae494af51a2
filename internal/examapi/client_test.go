package examapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nqtien/examinator/internal/model"
)

func TestStartDecodesAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/t/algebra-1/start/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		var body struct {
			StudentName string `json:"student_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if body.StudentName != "Dana" {
			t.Errorf("student_name = %q, want Dana", body.StudentName)
		}
		json.NewEncoder(w).Encode(model.TestStart{
			AttemptID: 99,
			Questions: []model.Question{{ID: 1, Text: "q", Options: []model.Option{{ID: 1}, {ID: 2}}}},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	start, err := client.Start(context.Background(), "algebra-1", "Dana")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if start.AttemptID != 99 || len(start.Questions) != 1 {
		t.Errorf("unexpected start payload: %+v", start)
	}
}

func TestSubmitSendsFullAnswerSet(t *testing.T) {
	var got submitRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	answers := []model.Answer{
		{QuestionID: 1, SelectedOptionIDs: []int64{5}, IsCorrect: true},
		{QuestionID: 2, SelectedOptionIDs: []int64{6, 7}, IsCorrect: false},
	}
	if err := client.Submit(context.Background(), "algebra-1", 99, answers); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.AttemptID != 99 || len(got.Answers) != 2 {
		t.Errorf("backend received %+v", got)
	}
}

func TestSubmitFailureMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	err := client.Submit(context.Background(), "algebra-1", 99, nil)
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
}

func TestFetchResultFailureMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.FetchResult(context.Background(), "algebra-1", 99)
	if !errors.Is(err, ErrResultFetchFailed) {
		t.Fatalf("expected ErrResultFetchFailed, got %v", err)
	}
}

func TestFetchResultDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/t/algebra-1/results/99/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.Result{AttemptID: 99, StudentName: "Dana", Score: 2, TotalQuestions: 3, Percentage: 67})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	result, err := client.FetchResult(context.Background(), "algebra-1", 99)
	if err != nil {
		t.Fatalf("FetchResult: %v", err)
	}
	if result.Score != 2 || result.Percentage != 67 {
		t.Errorf("unexpected result: %+v", result)
	}
}
