// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/campus-vote/auth"
	"github.com/danielhkuo/campus-vote/cliparse"
	"github.com/danielhkuo/campus-vote/db"
	"github.com/danielhkuo/campus-vote/middleware"
	"github.com/danielhkuo/campus-vote/models"
)

// Domain rule violations. These are user-facing outcomes, not failures.
var (
	ErrUnknownStudent   = errors.New("unknown student")
	ErrAlreadyVoted     = errors.New("student has already voted")
	ErrInvalidCandidate = errors.New("invalid candidate")
)

// User-facing messages
const (
	msgMissingFields    = "Missing required fields: student_id, name, candidate_id"
	msgEmptyFields      = "All fields are required and cannot be empty"
	msgUnknownStudent   = "Invalid Student ID. Please check your UID."
	msgAlreadyVoted     = "You have already voted! Multiple votes are not allowed."
	msgInvalidCandidate = "Invalid candidate selected"
	msgVoteFailed       = "Failed to cast vote. Please try again."
	msgVoteConflict     = "Your vote could not be recorded because of a concurrent update. Please try again."
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// Ballot is a validated vote request
type Ballot struct {
	StudentID   string
	Name        string
	CandidateID int64
	IPHash      string
	UserAgent   string
}

// CastResult is what a committed vote reports back
type CastResult struct {
	VoteID        int64
	CandidateName string
	Timestamp     time.Time
}

// CastVote handles POST /vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	// Parse request
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		if errors.Is(err, models.ErrInvalidCandidateID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrInvalidCandidateID.Error())
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == nil || req.Name == nil || req.CandidateID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	ballot := Ballot{
		StudentID:   auth.NormalizeStudentID(*req.StudentID),
		Name:        strings.TrimSpace(*req.Name),
		CandidateID: int64(*req.CandidateID),
		IPHash:      auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent:   r.UserAgent(),
	}

	if ballot.StudentID == "" || ballot.Name == "" || ballot.CandidateID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgEmptyFields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.QueryTimeout)
	defer cancel()

	result, err := RecordVote(ctx, h.db, h.cfg.DatabaseType, ballot)
	switch {
	case errors.Is(err, ErrUnknownStudent):
		slog.Info("vote rejected", "reason", "unknown student", "student_id", ballot.StudentID)
		middleware.ErrorResponse(w, http.StatusBadRequest, msgUnknownStudent)
		return
	case errors.Is(err, ErrAlreadyVoted):
		slog.Info("vote rejected", "reason", "already voted", "student_id", ballot.StudentID)
		middleware.ErrorResponse(w, http.StatusBadRequest, msgAlreadyVoted)
		return
	case errors.Is(err, ErrInvalidCandidate):
		slog.Info("vote rejected", "reason", "invalid candidate",
			"student_id", ballot.StudentID, "candidate_id", ballot.CandidateID)
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidCandidate)
		return
	case db.IsSerializationFailure(err):
		slog.Error("vote transaction conflict",
			"error", err,
			"request_id", middleware.RequestID(r.Context()),
			"student_id", ballot.StudentID,
			"candidate_id", ballot.CandidateID,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgVoteConflict)
		return
	case err != nil:
		slog.Error("failed to cast vote",
			"error", err,
			"request_id", middleware.RequestID(r.Context()),
			"student_id", ballot.StudentID,
			"candidate_id", ballot.CandidateID,
		)
		middleware.ErrorResponse(w, dbFailureStatus(err), msgVoteFailed)
		return
	}

	slog.Info("vote cast",
		"vote_id", result.VoteID,
		"student_id", ballot.StudentID,
		"candidate_id", ballot.CandidateID,
	)

	middleware.SuccessResponse(w, http.StatusOK,
		fmt.Sprintf("Vote cast successfully for %s!", result.CandidateName),
		models.CastVoteResponse{
			StudentID:     ballot.StudentID,
			CandidateName: result.CandidateName,
			Timestamp:     result.Timestamp,
		})
}

// RecordVote records a ballot in one transaction: the student is flagged as
// voted, a vote row is appended, and the candidate's counter is incremented.
// Any failure rolls back all three.
//
// Double voting is prevented three ways. The student row is locked on
// postgres (sqlite serializes through its single pooled connection). The
// has_voted flip is conditional and must touch exactly one row. And
// votes.student_id is UNIQUE. A racing second caster gets ErrAlreadyVoted.
func RecordVote(ctx context.Context, conn *sql.DB, dbType string, b Ballot) (CastResult, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Check if student exists and hasn't voted yet
	var storedName string
	var hasVoted bool
	err = tx.QueryRowContext(ctx, `
		SELECT name, has_voted
		FROM students
		WHERE student_id = $1`+db.LockStudentClause(dbType),
		b.StudentID,
	).Scan(&storedName, &hasVoted)

	if err == sql.ErrNoRows {
		return CastResult{}, ErrUnknownStudent
	}
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to query student: %w", err)
	}
	if hasVoted {
		return CastResult{}, ErrAlreadyVoted
	}

	// The student ID is authoritative; a name mismatch is only worth a warning
	if !auth.NamesMatch(storedName, b.Name) {
		slog.Warn("name mismatch",
			"student_id", b.StudentID,
			"stored_name", storedName,
			"supplied_name", b.Name,
		)
	}

	var candidateName string
	err = tx.QueryRowContext(ctx, `
		SELECT name FROM candidates WHERE candidate_id = $1
	`, b.CandidateID).Scan(&candidateName)

	if err == sql.ErrNoRows {
		return CastResult{}, ErrInvalidCandidate
	}
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to query candidate: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE students
		SET has_voted = TRUE
		WHERE student_id = $1 AND has_voted = FALSE
	`, b.StudentID)
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to mark student voted: %w", err)
	}
	flipped, err := res.RowsAffected()
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to mark student voted: %w", err)
	}
	if flipped != 1 {
		return CastResult{}, ErrAlreadyVoted
	}

	// postgres stores microseconds; truncate so the response matches the row
	votedAt := time.Now().UTC().Truncate(time.Microsecond)

	var voteID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO votes (student_id, candidate_id, timestamp, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING vote_id
	`, b.StudentID, b.CandidateID, votedAt, b.IPHash, b.UserAgent).Scan(&voteID)

	if db.IsUniqueViolation(err) {
		return CastResult{}, ErrAlreadyVoted
	}
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE candidates
		SET total_votes = total_votes + 1
		WHERE candidate_id = $1
	`, b.CandidateID)
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to increment candidate votes: %w", err)
	}
	bumped, err := res.RowsAffected()
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to increment candidate votes: %w", err)
	}
	if bumped != 1 {
		return CastResult{}, ErrInvalidCandidate
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return CastResult{}, ErrAlreadyVoted
		}
		return CastResult{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	return CastResult{
		VoteID:        voteID,
		CandidateName: candidateName,
		Timestamp:     votedAt,
	}, nil
}
