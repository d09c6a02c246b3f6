// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Envelope

Every response body is an APIResponse:

	{"status": "success"|"error", "message": ..., "data": ..., "timestamp": ...}

# Request Types

  - CastVoteRequest: student_id, name, candidate_id

candidate_id accepts a JSON number or a numeric string.

# Response Types

  - ServiceInfo: service identity for GET /
  - CastVoteResponse: student_id, candidate_name, timestamp
  - ResultsResponse: candidates with totals plus VotingStats
  - RecentActivityResponse: recent_votes

# Domain Types

  - Student: roster entry and has_voted flag
  - Candidate: ballot choice
  - CandidateResult: candidate with total_votes
  - Vote: append-only vote row
  - VotingStats: snapshot-consistent turnout counts
  - RecentVote: vote joined with student and candidate names
*/
package models
