// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/matdaan/server/middleware"
	"github.com/matdaan/server/models"
	"github.com/matdaan/server/voting"
)

type VoteHandler struct {
	svc *voting.Service
}

func NewVoteHandler(svc *voting.Service) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Cast handles POST /votes/cast
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ElectionID == "" || req.EpicID == "" || req.CandidateName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id, epic_id, and candidate_name are required")
		return
	}
	if strings.ContainsAny(req.EpicID+req.CandidateName+req.ElectionID, "|") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "fields must not contain '|'")
		return
	}

	result, err := h.svc.CastVote(req.ElectionID, req.EpicID, req.CandidateName)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message:       "Vote cast successfully!",
		Candidate:     result.Candidate,
		TransactionID: result.TransactionID,
	})
}

// Check handles GET /votes/check/{electionID}/{epicID}
func (h *VoteHandler) Check(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionID")
	epicID := r.PathValue("epicID")
	if electionID == "" || epicID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id and epic id are required")
		return
	}

	result, err := h.svc.CheckVoted(electionID, epicID)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	if result.AlreadyVoted {
		middleware.JSONResponse(w, http.StatusOK, models.CheckVoteResponse{
			Status:  models.VoteStatusAlreadyVoted,
			Details: result.Details,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckVoteResponse{
		Status:  models.VoteStatusNotVoted,
		Message: "Voter can proceed to vote.",
	})
}

// Results handles GET /votes/results/{electionID}
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionID")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	results, err := h.svc.Tally(electionID)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		ElectionID: electionID,
		Results:    results,
	})
}

// writeVotingError maps voting service errors to HTTP status codes.
func writeVotingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voting.ErrElectionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
	case errors.Is(err, voting.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found in election")
	case errors.Is(err, voting.ErrVoterNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
	case errors.Is(err, voting.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Voter has already voted")
	case errors.Is(err, voting.ErrWrongConstituency):
		middleware.ErrorResponse(w, http.StatusForbidden, "Voter does not belong to election constituency")
	default:
		slog.Error("voting operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
