// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campus-vote/cliparse"
	"github.com/danielhkuo/campus-vote/middleware"
	"github.com/danielhkuo/campus-vote/models"
)

const (
	ServiceName    = "campus-vote"
	ServiceVersion = "v1"
)

type ServiceHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewServiceHandler(db *sql.DB, cfg cliparse.Config) *ServiceHandler {
	return &ServiceHandler{db: db, cfg: cfg}
}

// Root handles GET /
func (h *ServiceHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.SuccessResponse(w, http.StatusOK, "Campus vote server is running!", models.ServiceInfo{
		Service: ServiceName,
		Version: ServiceVersion,
	})
}

// Health handles GET /health
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.QueryTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("health check failed", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// dbFailureStatus maps an infrastructure error to a status code:
// 503 when the database could not be reached in time, 500 otherwise
func dbFailureStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
