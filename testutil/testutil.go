// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/campus-vote/cliparse"
	"github.com/danielhkuo/campus-vote/db"
)

// TestDBURLEnv selects a postgres database for tests when set.
// Otherwise each test gets a fresh sqlite file in its temp dir.
const TestDBURLEnv = "TEST_DATABASE_URL"

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	cfg := cliparse.Config{
		Port:         5000,
		DatabaseType: cliparse.DatabaseSQLite,
		IPHashSalt:   "test-ip-salt",
		QueryTimeout: 5 * time.Second,
		MaxOpenConns: 10,
	}

	if url := os.Getenv(TestDBURLEnv); url != "" {
		cfg.DatabaseURL = url
		cfg.DatabaseType = cliparse.DatabasePostgres
	} else {
		cfg.DatabaseURL = "file:" + filepath.Join(t.TempDir(), "vote.db")
	}

	return cfg
}

// SetupTestDB creates a fresh test database with the full schema.
// The pool is closed when the test finishes.
func SetupTestDB(t *testing.T) (*sql.DB, cliparse.Config) {
	t.Helper()

	cfg := GetTestConfig(t)
	ctx := context.Background()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	if cfg.DatabaseType == cliparse.DatabasePostgres {
		_, err = conn.ExecContext(ctx, `
			DROP TABLE IF EXISTS votes CASCADE;
			DROP TABLE IF EXISTS candidates CASCADE;
			DROP TABLE IF EXISTS students CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn, cfg
}

// CreateTestStudent inserts a student who has not voted yet
func CreateTestStudent(t *testing.T, conn *sql.DB, studentID, name string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO students (student_id, name, has_voted)
		VALUES ($1, $2, FALSE)
	`, studentID, name)
	if err != nil {
		t.Fatalf("Failed to create test student: %v", err)
	}
}

// CreateTestCandidate inserts a candidate with zero votes and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, name, course string) int64 {
	t.Helper()

	var candidateID int64
	err := conn.QueryRow(`
		INSERT INTO candidates (name, course, total_votes)
		VALUES ($1, $2, 0)
		RETURNING candidate_id
	`, name, course).Scan(&candidateID)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CreateTestVote records a completed vote the same way the vote transaction
// does: vote row, has_voted flag, and counter increment.
func CreateTestVote(t *testing.T, conn *sql.DB, studentID string, candidateID int64, at time.Time) int64 {
	t.Helper()

	var voteID int64
	err := conn.QueryRow(`
		INSERT INTO votes (student_id, candidate_id, timestamp)
		VALUES ($1, $2, $3)
		RETURNING vote_id
	`, studentID, candidateID, at.UTC()).Scan(&voteID)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	if _, err := conn.Exec(`UPDATE students SET has_voted = TRUE WHERE student_id = $1`, studentID); err != nil {
		t.Fatalf("Failed to mark test student voted: %v", err)
	}
	if _, err := conn.Exec(`UPDATE candidates SET total_votes = total_votes + 1 WHERE candidate_id = $1`, candidateID); err != nil {
		t.Fatalf("Failed to increment test candidate: %v", err)
	}

	return voteID
}

// HasVoted returns the has_voted flag for a student
func HasVoted(t *testing.T, conn *sql.DB, studentID string) bool {
	t.Helper()

	var voted bool
	if err := conn.QueryRow(`SELECT has_voted FROM students WHERE student_id = $1`, studentID).Scan(&voted); err != nil {
		t.Fatalf("Failed to query has_voted: %v", err)
	}
	return voted
}

// TotalVotes returns a candidate's total_votes counter
func TotalVotes(t *testing.T, conn *sql.DB, candidateID int64) int {
	t.Helper()

	var total int
	if err := conn.QueryRow(`SELECT total_votes FROM candidates WHERE candidate_id = $1`, candidateID).Scan(&total); err != nil {
		t.Fatalf("Failed to query total_votes: %v", err)
	}
	return total
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var count int
	// table names come from test code only
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
