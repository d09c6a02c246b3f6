// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campus-vote/cliparse"
	"github.com/danielhkuo/campus-vote/middleware"
	"github.com/danielhkuo/campus-vote/models"
)

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg}
}

// ListCandidates handles GET /candidates
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.QueryTimeout)
	defer cancel()

	candidates, err := ListCandidates(ctx, h.db)
	if err != nil {
		slog.Error("failed to fetch candidates", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, dbFailureStatus(err), "Failed to fetch candidates")
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, "", candidates)
}

// ListCandidates returns every candidate ordered by name
func ListCandidates(ctx context.Context, conn *sql.DB) ([]models.Candidate, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT candidate_id, name, course
		FROM candidates
		ORDER BY name ASC, candidate_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.CandidateID, &c.Name, &c.Course); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return candidates, nil
}
