// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/campus-vote/cliparse"
	"github.com/danielhkuo/campus-vote/db"
	"github.com/danielhkuo/campus-vote/middleware"
	"github.com/danielhkuo/campus-vote/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /results
// Candidates by total_votes desc (ties by name) plus turnout stats,
// all read from one snapshot
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.QueryTimeout)
	defer cancel()

	results, err := ComputeResults(ctx, h.db, h.cfg.DatabaseType)
	if err != nil {
		slog.Error("failed to fetch results", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, dbFailureStatus(err), "Failed to fetch results")
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, "", results)
}

// GetRecentActivity handles GET /stats
// Returns the most recent votes with student and candidate names
func (h *ResultsHandler) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.QueryTimeout)
	defer cancel()

	votes, err := RecentVotes(ctx, h.db, models.RecentVotesLimit)
	if err != nil {
		slog.Error("failed to fetch statistics", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, dbFailureStatus(err), "Failed to fetch statistics")
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, "", models.RecentActivityResponse{
		RecentVotes: votes,
	})
}

// ComputeResults reads the standings and turnout counts inside one read-only
// transaction so the counts can never disagree with each other.
func ComputeResults(ctx context.Context, conn *sql.DB, dbType string) (models.ResultsResponse, error) {
	tx, err := conn.BeginTx(ctx, db.SnapshotTxOptions(dbType))
	if err != nil {
		return models.ResultsResponse{}, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	candidates, err := getCandidateResults(ctx, tx)
	if err != nil {
		return models.ResultsResponse{}, err
	}

	var stats models.VotingStats
	err = tx.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM votes),
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM students WHERE has_voted = TRUE)
	`).Scan(&stats.TotalVotesCast, &stats.TotalStudents, &stats.VotedStudents)
	if err != nil {
		return models.ResultsResponse{}, fmt.Errorf("failed to count votes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ResultsResponse{}, fmt.Errorf("failed to end snapshot: %w", err)
	}

	stats.PendingVotes = stats.TotalStudents - stats.VotedStudents
	stats.TurnoutPercent = turnoutPercent(stats.VotedStudents, stats.TotalStudents)

	return models.ResultsResponse{
		Candidates: candidates,
		Stats:      stats,
	}, nil
}

func getCandidateResults(ctx context.Context, tx *sql.Tx) ([]models.CandidateResult, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT candidate_id, name, course, total_votes
		FROM candidates
		ORDER BY total_votes DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.CandidateResult{}
	for rows.Next() {
		var c models.CandidateResult
		if err := rows.Scan(&c.CandidateID, &c.Name, &c.Course, &c.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return candidates, nil
}

// RecentVotes returns up to limit votes, newest first
func RecentVotes(ctx context.Context, conn *sql.DB, limit int) ([]models.RecentVote, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT v.vote_id, v.student_id, s.name, c.name, v.timestamp
		FROM votes v
		JOIN students s ON v.student_id = s.student_id
		JOIN candidates c ON v.candidate_id = c.candidate_id
		ORDER BY v.timestamp DESC, v.vote_id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent votes: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	votes := []models.RecentVote{}
	for rows.Next() {
		var v models.RecentVote
		if err := rows.Scan(&v.VoteID, &v.StudentID, &v.StudentName, &v.CandidateName, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan recent vote: %w", err)
		}
		v.Timestamp = v.Timestamp.UTC()
		v.TimeAgo = humanize.RelTime(v.Timestamp, now, "ago", "from now")
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent votes: %w", err)
	}

	return votes, nil
}

// turnoutPercent is voted/total as a percentage rounded to one decimal
func turnoutPercent(voted, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(voted)*1000/float64(total)) / 10
}
