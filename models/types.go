package models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Envelope status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecentVotesLimit is how many votes GET /stats returns
const RecentVotesLimit = 10

// Envelope

// APIResponse wraps every response body
type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp *time.Time  `json:"timestamp,omitempty"`
}

// Request types

// CastVoteRequest uses pointers so absent keys can be told apart from empty ones
type CastVoteRequest struct {
	StudentID   *string      `json:"student_id"`
	Name        *string      `json:"name"`
	CandidateID *CandidateID `json:"candidate_id"`
}

var ErrInvalidCandidateID = errors.New("candidate_id must be an integer")

// CandidateID accepts a JSON number or a numeric string ("3").
// Integral JSON numbers written as floats (3.0) are accepted; strings must
// hold a plain integer.
type CandidateID int64

func (c *CandidateID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	quoted := false
	if unquoted, err := strconv.Unquote(s); err == nil {
		quoted = true
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*c = 0
			return nil
		}
	}

	n := json.Number(s)
	if id, err := n.Int64(); err == nil {
		*c = CandidateID(id)
		return nil
	}
	if quoted {
		return ErrInvalidCandidateID
	}

	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return ErrInvalidCandidateID
	}
	*c = CandidateID(f)
	return nil
}

// Response types

type ServiceInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

type CastVoteResponse struct {
	StudentID     string    `json:"student_id"`
	CandidateName string    `json:"candidate_name"`
	Timestamp     time.Time `json:"timestamp"`
}

type ResultsResponse struct {
	Candidates []CandidateResult `json:"candidates"`
	Stats      VotingStats       `json:"stats"`
}

type RecentActivityResponse struct {
	RecentVotes []RecentVote `json:"recent_votes"`
}

// Domain types

type Student struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	HasVoted  bool   `json:"has_voted"`
}

type Candidate struct {
	CandidateID int64  `json:"candidate_id"`
	Name        string `json:"name"`
	Course      string `json:"course"`
}

type CandidateResult struct {
	CandidateID int64  `json:"candidate_id"`
	Name        string `json:"name"`
	Course      string `json:"course"`
	TotalVotes  int    `json:"total_votes"`
}

type Vote struct {
	VoteID      int64     `json:"vote_id"`
	StudentID   string    `json:"student_id"`
	CandidateID int64     `json:"candidate_id"`
	Timestamp   time.Time `json:"timestamp"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
}

// VotingStats is read from a single snapshot, so
// VotedStudents + PendingVotes == TotalStudents always holds.
type VotingStats struct {
	TotalVotesCast int     `json:"total_votes_cast"`
	TotalStudents  int     `json:"total_students"`
	VotedStudents  int     `json:"voted_students"`
	PendingVotes   int     `json:"pending_votes"`
	TurnoutPercent float64 `json:"turnout_percent"`
}

type RecentVote struct {
	VoteID        int64     `json:"vote_id"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	CandidateName string    `json:"candidate_name"`
	Timestamp     time.Time `json:"timestamp"`
	TimeAgo       string    `json:"time_ago"`
}
