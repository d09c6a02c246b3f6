// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/campus-vote/models"
)

// envelope mirrors models.APIResponse with a typed payload for decoding
type envelope[T any] struct {
	Status    string     `json:"status"`
	Message   string     `json:"message"`
	Data      T          `json:"data"`
	Timestamp *time.Time `json:"timestamp"`
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var resp envelope[T]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v. Body: %s", err, w.Body.String())
	}
	return resp
}

func voteBody(studentID, name string, candidateID interface{}) map[string]interface{} {
	return map[string]interface{}{
		"student_id":   studentID,
		"name":         name,
		"candidate_id": candidateID,
	}
}

// decodeEnvelopeNoFail is for goroutines, which must not call t.Fatal
func decodeEnvelopeNoFail(w *httptest.ResponseRecorder) *envelope[models.ResultsResponse] {
	var resp envelope[models.ResultsResponse]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return nil
	}
	return &resp
}

// statsConsistent checks the invariants every results snapshot must satisfy
func statsConsistent(r models.ResultsResponse) bool {
	sum := 0
	for _, c := range r.Candidates {
		sum += c.TotalVotes
	}

	s := r.Stats
	return s.VotedStudents+s.PendingVotes == s.TotalStudents &&
		s.VotedStudents <= s.TotalStudents &&
		s.TotalVotesCast == sum &&
		s.TotalVotesCast == s.VotedStudents
}
