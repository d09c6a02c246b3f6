// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/campus-vote/middleware"
	"github.com/danielhkuo/campus-vote/models"
	"github.com/danielhkuo/campus-vote/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp models.APIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != models.StatusSuccess {
		t.Errorf("Expected status 'success', got %q", resp.Status)
	}
	if resp.Message != "Campus vote server is running!" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
	if resp.Timestamp == nil {
		t.Error("Expected timestamp in root response")
	}
}

func TestRouteExistence(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	mux := NewRouter(db, cfg)

	// 400 is a valid answer for POST /vote with no body; only 404/405 mean no route
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/candidates"},
		{"POST", "/vote"},
		{"GET", "/results"},
		{"GET", "/stats"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed || w.Code == http.StatusNotFound {
				t.Errorf("Route %s %s returned %d, expected route handler to exist", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/vote"},
		{"POST", "/results"},
		{"DELETE", "/candidates"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPath(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	mux := NewRouter(db, cfg)

	for _, path := range []string{"/foo", "/candidates/1", "/vote/extra"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

			if w.Code != http.StatusNotFound {
				t.Errorf("Expected 404 for %s, got %d", path, w.Code)
			}
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	db, cfg := testutil.SetupTestDB(t)
	mux := NewRouter(db, cfg)

	t.Run("echoes supplied id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/candidates", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if got := w.Header().Get(middleware.RequestIDHeader); got != "req-123" {
			t.Errorf("Expected request ID 'req-123', got %q", got)
		}
	})

	t.Run("health and root carry id", func(t *testing.T) {
		for _, path := range []string{"/health", "/"} {
			req := httptest.NewRequest("GET", path, nil)
			req.Header.Set(middleware.RequestIDHeader, "req-"+path)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if got := w.Header().Get(middleware.RequestIDHeader); got != "req-"+path {
				t.Errorf("%s: expected request ID %q, got %q", path, "req-"+path, got)
			}
		}
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/results", nil))

		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Error("Expected generated request ID")
		}
	})
}
