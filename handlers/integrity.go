// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/matdaan/server/ledger"
	"github.com/matdaan/server/middleware"
	"github.com/matdaan/server/models"
	"github.com/matdaan/server/voting"
)

type IntegrityHandler struct {
	svc   *voting.Service
	chain ledger.Chain
}

func NewIntegrityHandler(svc *voting.Service, chain ledger.Chain) *IntegrityHandler {
	return &IntegrityHandler{svc: svc, chain: chain}
}

// VerifyElection handles POST /elections/{id}/verify-integrity
func (h *IntegrityHandler) VerifyElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	result, err := h.svc.Reconcile(electionID)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReconcileResponse{
		Status:         "completed",
		VerifiedCount:  len(result.Verified),
		CorrectedCount: len(result.Corrected),
		Corrected:      result.Corrected,
		Verified:       result.Verified,
	})
}

// LedgerStats handles GET /ledger/stats
func (h *IntegrityHandler) LedgerStats(w http.ResponseWriter, r *http.Request) {
	head, ok, err := h.chain.Head()
	if err != nil {
		slog.Error("failed to read chain head", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.LedgerStatsResponse{Empty: true})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LedgerStatsResponse{
		Height:       head.Height,
		LatestHash:   head.CurrentHash,
		LastAppended: humanize.Time(head.CreatedAt),
	})
}

// LedgerVerify handles GET /ledger/verify
func (h *IntegrityHandler) LedgerVerify(w http.ResponseWriter, r *http.Request) {
	result, err := h.chain.Verify()
	if err != nil {
		slog.Error("chain verification failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	if !result.Valid {
		slog.Warn("ledger chain is broken", "bad_height", result.BadHeight, "reason", result.BadReason)
	}

	middleware.JSONResponse(w, http.StatusOK, models.LedgerVerifyResponse{
		Valid:     result.Valid,
		Blocks:    result.Blocks,
		BadHeight: result.BadHeight,
		BadReason: result.BadReason,
	})
}
