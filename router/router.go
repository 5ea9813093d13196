// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/matdaan/server/handlers"
	"github.com/matdaan/server/ledger"
	"github.com/matdaan/server/middleware"
	"github.com/matdaan/server/voting"
)

func NewRouter(db *sql.DB, chain ledger.Chain) *http.ServeMux {
	mux := http.NewServeMux()

	svc := voting.NewService(db, chain)

	electionHandler := handlers.NewElectionHandler(db)
	voterHandler := handlers.NewVoterHandler(db)
	voteHandler := handlers.NewVoteHandler(svc)
	integrityHandler := handlers.NewIntegrityHandler(svc, chain)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.Create))
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.List))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.Get))

	// Electoral roll
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("GET /voters/{epicID}", middleware.WithLogging(voterHandler.Get))

	// Voting
	mux.HandleFunc("POST /votes/cast", middleware.WithLogging(voteHandler.Cast))
	mux.HandleFunc("GET /votes/check/{electionID}/{epicID}", middleware.WithLogging(voteHandler.Check))
	mux.HandleFunc("GET /votes/results/{electionID}", middleware.WithLogging(voteHandler.Results))

	// Integrity
	mux.HandleFunc("POST /elections/{id}/verify-integrity", middleware.WithLogging(integrityHandler.VerifyElection))
	mux.HandleFunc("GET /ledger/stats", middleware.WithLogging(integrityHandler.LedgerStats))
	mux.HandleFunc("GET /ledger/verify", middleware.WithLogging(integrityHandler.LedgerVerify))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("matdaan API v1"))
	})

	return mux
}
