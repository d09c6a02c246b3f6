// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the campus vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Service:

	GET /       - Service identity and server time
	GET /health - Database ping (200 OK or 503)

Voting:

	GET  /candidates - Candidates ordered by name
	POST /vote       - Cast a vote

Results:

	GET /results - Standings and turnout stats
	GET /stats   - Ten most recent votes

Anything else returns 404; known paths with the wrong method return 405.

# Handler Initialization

The router creates handler instances with dependency injection:

	candidateHandler := handlers.NewCandidateHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the connection pool and configuration.
*/
package router
