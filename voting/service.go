// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/matdaan/server/ledger"
	"github.com/matdaan/server/models"
)

var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrCandidateNotFound = errors.New("candidate not found in election")
	ErrVoterNotFound     = errors.New("voter not found")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrWrongConstituency = errors.New("voter does not belong to election constituency")
)

// Service is the vote-casting and integrity core. It owns the mutable vote
// store (the vote table) and writes to the ledger through the Chain contract.
// Both dependencies are injected; the service holds no global state.
type Service struct {
	db    *sql.DB
	chain ledger.Chain
}

func NewService(db *sql.DB, chain ledger.Chain) *Service {
	return &Service{db: db, chain: chain}
}

// CastResult is returned to the voter after a successful cast.
type CastResult struct {
	Candidate     string
	TransactionID string
}

// CastVote runs the double-entry casting protocol: validate election,
// candidate, and no prior vote, then append to the ledger, then insert the
// vote row. The ledger write is authoritative - if it fails nothing is
// written to the vote store. A crash between the two writes leaves an
// orphan ledger block with no vote row; the reconciler only scans from
// store to ledger, so such orphans go undetected.
func (s *Service) CastVote(electionID, epicID, candidateName string) (CastResult, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)
	`, electionID).Scan(&exists)
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to query election: %w", err)
	}
	if !exists {
		return CastResult{}, ErrElectionNotFound
	}

	err = s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE election_id = $1 AND name = $2)
	`, electionID, candidateName).Scan(&exists)
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	if !exists {
		return CastResult{}, ErrCandidateNotFound
	}

	err = s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE election_id = $1 AND epic_id = $2)
	`, electionID, epicID).Scan(&exists)
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to query existing vote: %w", err)
	}
	if exists {
		return CastResult{}, ErrAlreadyVoted
	}

	// Ledger first. If this fails the vote does not count.
	transactionID, err := s.chain.Append(epicID, candidateName, electionID)
	if err != nil {
		return CastResult{}, fmt.Errorf("ledger write failed: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO vote (election_id, epic_id, candidate, transaction_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, electionID, epicID, candidateName, transactionID, time.Now().UTC())
	if err != nil {
		// Two casts racing past the read-then-act check land here: the
		// primary key on (election_id, epic_id) rejects the loser. The
		// loser's ledger block is already written and stays orphaned.
		if isUniqueViolation(err) {
			slog.Warn("duplicate vote lost the insert race", "election_id", electionID, "epic_id", epicID, "transaction_id", transactionID)
			return CastResult{}, ErrAlreadyVoted
		}
		return CastResult{}, fmt.Errorf("failed to record vote: %w", err)
	}

	slog.Info("vote cast", "election_id", electionID, "transaction_id", transactionID)
	return CastResult{Candidate: candidateName, TransactionID: transactionID}, nil
}

// CheckResult reports whether a voter has already voted in an election.
type CheckResult struct {
	AlreadyVoted bool
	Details      *models.VoteDetails
}

// CheckVoted verifies the voter exists and belongs to the election's
// constituency, then reports whether a vote is already recorded.
func (s *Service) CheckVoted(electionID, epicID string) (CheckResult, error) {
	var constituency string
	err := s.db.QueryRow(`
		SELECT constituency FROM election WHERE id = $1
	`, electionID).Scan(&constituency)
	if err == sql.ErrNoRows {
		return CheckResult{}, ErrElectionNotFound
	}
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to query election: %w", err)
	}

	var assembly, parliamentary string
	err = s.db.QueryRow(`
		SELECT assembly_constituency, parliamentary_constituency FROM voter WHERE epic_id = $1
	`, epicID).Scan(&assembly, &parliamentary)
	if err == sql.ErrNoRows {
		return CheckResult{}, ErrVoterNotFound
	}
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to query voter: %w", err)
	}

	if constituency != assembly && constituency != parliamentary {
		return CheckResult{}, ErrWrongConstituency
	}

	var details models.VoteDetails
	err = s.db.QueryRow(`
		SELECT epic_id, candidate, transaction_id FROM vote
		WHERE election_id = $1 AND epic_id = $2
	`, electionID, epicID).Scan(&details.EpicID, &details.Candidate, &details.TransactionID)
	if err == sql.ErrNoRows {
		return CheckResult{}, nil
	}
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to query vote: %w", err)
	}

	return CheckResult{AlreadyVoted: true, Details: &details}, nil
}

// Tally groups the vote store's entries by candidate, descending count.
// It reads the display store, not the ledger.
func (s *Service) Tally(electionID string) ([]models.CandidateCount, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)
	`, electionID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query election: %w", err)
	}
	if !exists {
		return nil, ErrElectionNotFound
	}

	rows, err := s.db.Query(`
		SELECT candidate, COUNT(*) AS count
		FROM vote
		WHERE election_id = $1
		GROUP BY candidate
		ORDER BY count DESC, candidate
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	results := []models.CandidateCount{}
	for rows.Next() {
		var cc models.CandidateCount
		if err := rows.Scan(&cc.Candidate, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		results = append(results, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}

	return results, nil
}

// isUniqueViolation matches constraint errors from both supported drivers.
// lib/pq reports SQLSTATE 23505, modernc/sqlite reports "UNIQUE constraint
// failed" or "PRIMARY KEY constraint failed" text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
