// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matdaan/server/middleware"
	"github.com/matdaan/server/models"
)

type ElectionHandler struct {
	db *sql.DB
}

func NewElectionHandler(db *sql.DB) *ElectionHandler {
	return &ElectionHandler{db: db}
}

// Create handles POST /elections
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ElectionType == "" || req.State == "" || req.District == "" || req.Constituency == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_type, state, district, and constituency are required")
		return
	}
	if len(req.Candidates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one candidate is required")
		return
	}

	electionDate, err := time.Parse("2006-01-02", req.ElectionDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_date must be YYYY-MM-DD")
		return
	}

	seen := make(map[string]bool)
	for _, c := range req.Candidates {
		if c.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "candidate name is required")
			return
		}
		// '|' is reserved by the ledger payload encoding
		if strings.Contains(c.Name, "|") {
			middleware.ErrorResponse(w, http.StatusBadRequest, "candidate name must not contain '|'")
			return
		}
		if seen[c.Name] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "duplicate candidate name: "+c.Name)
			return
		}
		seen[c.Name] = true
	}

	electionID := uuid.NewString()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO election (id, election_type, state, district, constituency, election_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, electionID, req.ElectionType, req.State, req.District, req.Constituency, electionDate, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	for _, c := range req.Candidates {
		_, err = tx.Exec(`
			INSERT INTO candidate (election_id, name, party, symbol_url)
			VALUES ($1, $2, $3, $4)
		`, electionID, c.Name, c.Party, c.SymbolURL)
		if err != nil {
			slog.Error("failed to insert candidate", "error", err, "election_id", electionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", electionID, "candidates", len(req.Candidates))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
		Message:    "Election created successfully!",
	})
}

// List handles GET /elections
func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, election_type, state, district, constituency, election_date, created_at
		FROM election
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.ElectionType, &e.State, &e.District, &e.Constituency, &e.ElectionDate, &e.CreatedAt); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		elections = append(elections, e)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"elections": elections,
	})
}

// Get handles GET /elections/{id}
func (h *ElectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var e models.Election
	err := h.db.QueryRow(`
		SELECT id, election_type, state, district, constituency, election_date, created_at
		FROM election
		WHERE id = $1
	`, electionID).Scan(&e.ID, &e.ElectionType, &e.State, &e.District, &e.Constituency, &e.ElectionDate, &e.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT election_id, name, party, COALESCE(symbol_url, '')
		FROM candidate
		WHERE election_id = $1
		ORDER BY name
	`, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	e.Candidates = []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ElectionID, &c.Name, &c.Party, &c.SymbolURL); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		e.Candidates = append(e.Candidates, c)
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}
