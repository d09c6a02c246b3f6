// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the campus vote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ServiceHandler: Service identity and health
  - CandidateHandler: Candidate listing
  - VotingHandler: Vote casting
  - ResultsHandler: Standings, turnout, and recent activity

Handlers are created via constructor functions that accept *sql.DB and Config:

	votingHandler := handlers.NewVotingHandler(db, cfg)

Every handler bounds its database work with cfg.QueryTimeout.

# Casting a Vote

	POST /vote {"student_id": "S001", "name": "Aarav Sharma", "candidate_id": 2}

RecordVote runs the checks and the three writes in one transaction:

	result, err := handlers.RecordVote(ctx, db, cfg.DatabaseType, ballot)

Domain outcomes are sentinel errors mapped to 400:

  - ErrUnknownStudent
  - ErrAlreadyVoted
  - ErrInvalidCandidate

A name that does not match the roster is logged as a warning and the
vote still counts.

# Results

	GET /results → ComputeResults (single read-only snapshot)
	GET /stats   → RecentVotes (newest ten, joined names)

Invariants that hold on every results response:

	voted_students + pending_votes == total_students
	total_votes_cast == sum of candidate total_votes
*/
package handlers
