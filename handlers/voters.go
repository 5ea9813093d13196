// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/matdaan/server/middleware"
	"github.com/matdaan/server/models"
)

type VoterHandler struct {
	db *sql.DB
}

func NewVoterHandler(db *sql.DB) *VoterHandler {
	return &VoterHandler{db: db}
}

// Register handles POST /voters
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.EpicID == "" || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "epic_id and name are required")
		return
	}
	if strings.Contains(req.EpicID, "|") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "epic_id must not contain '|'")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO voter (epic_id, name, assembly_constituency, parliamentary_constituency, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, req.EpicID, req.Name, req.AssemblyConstituency, req.ParliamentaryConstituency, time.Now().UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "PRIMARY KEY constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			middleware.ErrorResponse(w, http.StatusConflict, "Voter already registered")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	slog.Info("voter registered", "epic_id", req.EpicID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		EpicID:  req.EpicID,
		Message: "Voter registered successfully!",
	})
}

// Get handles GET /voters/{epicID}
func (h *VoterHandler) Get(w http.ResponseWriter, r *http.Request) {
	epicID := r.PathValue("epicID")
	if epicID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "epic id is required")
		return
	}

	var v models.Voter
	err := h.db.QueryRow(`
		SELECT epic_id, name, assembly_constituency, parliamentary_constituency, created_at
		FROM voter
		WHERE epic_id = $1
	`, epicID).Scan(&v.EpicID, &v.Name, &v.AssemblyConstituency, &v.ParliamentaryConstituency, &v.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, v)
}
