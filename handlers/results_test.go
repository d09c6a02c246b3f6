// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/campus-vote/models"
	"github.com/danielhkuo/campus-vote/testutil"
)

func TestGetResults(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, cfg)

	// Zeta and Alpha tie on 1 vote, Mid leads with 2, Empty has none
	zeta := testutil.CreateTestCandidate(t, db, "Zeta", "BBA")
	alpha := testutil.CreateTestCandidate(t, db, "Alpha", "B.Com")
	mid := testutil.CreateTestCandidate(t, db, "Mid", "B.Sc")
	testutil.CreateTestCandidate(t, db, "Empty", "BA")

	for i := 1; i <= 6; i++ {
		testutil.CreateTestStudent(t, db, fmt.Sprintf("S%03d", i), fmt.Sprintf("Student %d", i))
	}

	now := time.Now()
	testutil.CreateTestVote(t, db, "S001", mid, now.Add(-4*time.Minute))
	testutil.CreateTestVote(t, db, "S002", mid, now.Add(-3*time.Minute))
	testutil.CreateTestVote(t, db, "S003", zeta, now.Add(-2*time.Minute))
	testutil.CreateTestVote(t, db, "S004", alpha, now.Add(-1*time.Minute))

	req := httptest.NewRequest("GET", "/results", nil)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	resp := decodeEnvelope[models.ResultsResponse](t, w)
	if resp.Status != models.StatusSuccess {
		t.Errorf("Expected status 'success', got %q", resp.Status)
	}
	if resp.Timestamp == nil {
		t.Error("Expected timestamp on results")
	}

	wantOrder := []string{"Mid", "Alpha", "Zeta", "Empty"}
	if len(resp.Data.Candidates) != len(wantOrder) {
		t.Fatalf("Expected %d candidates, got %d", len(wantOrder), len(resp.Data.Candidates))
	}
	for i, name := range wantOrder {
		if resp.Data.Candidates[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, resp.Data.Candidates[i].Name)
		}
	}
	if resp.Data.Candidates[0].TotalVotes != 2 {
		t.Errorf("Expected leader with 2 votes, got %d", resp.Data.Candidates[0].TotalVotes)
	}

	stats := resp.Data.Stats
	if stats.TotalVotesCast != 4 {
		t.Errorf("Expected 4 votes cast, got %d", stats.TotalVotesCast)
	}
	if stats.TotalStudents != 6 {
		t.Errorf("Expected 6 students, got %d", stats.TotalStudents)
	}
	if stats.VotedStudents != 4 {
		t.Errorf("Expected 4 voted students, got %d", stats.VotedStudents)
	}
	if stats.PendingVotes != 2 {
		t.Errorf("Expected 2 pending, got %d", stats.PendingVotes)
	}
	if stats.TurnoutPercent != 66.7 {
		t.Errorf("Expected turnout 66.7, got %v", stats.TurnoutPercent)
	}
	if !statsConsistent(resp.Data) {
		t.Errorf("Stats invariants violated: %+v", stats)
	}
}

func TestGetResults_Empty(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, cfg)

	w := httptest.NewRecorder()
	handler.GetResults(w, httptest.NewRequest("GET", "/results", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	resp := decodeEnvelope[models.ResultsResponse](t, w)
	if resp.Data.Candidates == nil || len(resp.Data.Candidates) != 0 {
		t.Errorf("Expected empty candidate list, got %v", resp.Data.Candidates)
	}
	if resp.Data.Stats.TurnoutPercent != 0 {
		t.Errorf("Expected 0 turnout with no students, got %v", resp.Data.Stats.TurnoutPercent)
	}
}

func TestGetResults_DatabaseFailure(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, cfg)

	db.Close()

	w := httptest.NewRecorder()
	handler.GetResults(w, httptest.NewRequest("GET", "/results", nil))

	if w.Code != http.StatusInternalServerError && w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 500 or 503, got %d", w.Code)
	}

	resp := decodeEnvelope[models.ResultsResponse](t, w)
	if resp.Status != models.StatusError {
		t.Errorf("Expected status 'error', got %q", resp.Status)
	}
	if resp.Message != "Failed to fetch results" {
		t.Errorf("Expected generic message, got %q", resp.Message)
	}
}

func TestGetRecentActivity(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, cfg)

	candA := testutil.CreateTestCandidate(t, db, "Priya Menon", "BBA")
	candB := testutil.CreateTestCandidate(t, db, "Rahul Verma", "B.Com")

	// 12 votes, one minute apart; only the newest 10 come back
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("S%03d", i)
		testutil.CreateTestStudent(t, db, id, fmt.Sprintf("Student %d", i))
		candidateID := candA
		if i%2 == 1 {
			candidateID = candB
		}
		testutil.CreateTestVote(t, db, id, candidateID, base.Add(time.Duration(i)*time.Minute))
	}

	w := httptest.NewRecorder()
	handler.GetRecentActivity(w, httptest.NewRequest("GET", "/stats", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	resp := decodeEnvelope[models.RecentActivityResponse](t, w)
	votes := resp.Data.RecentVotes
	if len(votes) != models.RecentVotesLimit {
		t.Fatalf("Expected %d recent votes, got %d", models.RecentVotesLimit, len(votes))
	}

	// Newest first
	if votes[0].StudentID != "S011" {
		t.Errorf("Expected newest vote from S011, got %s", votes[0].StudentID)
	}
	if votes[0].StudentName != "Student 11" {
		t.Errorf("Expected joined student name, got %q", votes[0].StudentName)
	}
	if votes[0].CandidateName != "Rahul Verma" {
		t.Errorf("Expected joined candidate name 'Rahul Verma', got %q", votes[0].CandidateName)
	}
	if votes[len(votes)-1].StudentID != "S002" {
		t.Errorf("Expected oldest returned vote from S002, got %s", votes[len(votes)-1].StudentID)
	}
	for i := 1; i < len(votes); i++ {
		if votes[i].Timestamp.After(votes[i-1].Timestamp) {
			t.Errorf("Votes not in descending order at %d", i)
		}
	}
	if votes[0].TimeAgo == "" {
		t.Error("Expected time_ago to be filled")
	}
}

func TestGetRecentActivity_NoVotes(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, cfg)

	w := httptest.NewRecorder()
	handler.GetRecentActivity(w, httptest.NewRequest("GET", "/stats", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	// Must be [] rather than null for the frontend
	resp := decodeEnvelope[map[string][]models.RecentVote](t, w)
	votes, ok := resp.Data["recent_votes"]
	if !ok || votes == nil {
		t.Errorf("Expected empty recent_votes array, got %v", resp.Data)
	}
}

func TestRecentVotes_TimeAgo(t *testing.T) {
	db, _ := testutil.SetupTestDB(t)

	candidateID := testutil.CreateTestCandidate(t, db, "Priya Menon", "BBA")
	testutil.CreateTestStudent(t, db, "S001", "Aarav Sharma")
	testutil.CreateTestVote(t, db, "S001", candidateID, time.Now().Add(-3*time.Minute))

	votes, err := RecentVotes(context.Background(), db, 5)
	if err != nil {
		t.Fatalf("RecentVotes() error = %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("Expected 1 vote, got %d", len(votes))
	}
	if votes[0].TimeAgo != "3 minutes ago" {
		t.Errorf("Expected '3 minutes ago', got %q", votes[0].TimeAgo)
	}
}

func TestTurnoutPercent(t *testing.T) {
	tests := []struct {
		voted, total int
		want         float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{10, 10, 100},
	}

	for _, tt := range tests {
		if got := turnoutPercent(tt.voted, tt.total); got != tt.want {
			t.Errorf("turnoutPercent(%d, %d) = %v, want %v", tt.voted, tt.total, got, tt.want)
		}
	}
}
