// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote status constants returned by the check endpoint
const (
	VoteStatusAlreadyVoted = "already_voted"
	VoteStatusNotVoted     = "not_voted"
)

// Request types

type CandidateInput struct {
	Name      string `json:"name"`
	Party     string `json:"party"`
	SymbolURL string `json:"symbol_url"`
}

type CreateElectionRequest struct {
	ElectionType string           `json:"election_type"`
	State        string           `json:"state"`
	District     string           `json:"district"`
	Constituency string           `json:"constituency"`
	ElectionDate string           `json:"election_date"` // YYYY-MM-DD
	Candidates   []CandidateInput `json:"candidates"`
}

type RegisterVoterRequest struct {
	EpicID                    string `json:"epic_id"`
	Name                      string `json:"name"`
	AssemblyConstituency      string `json:"assembly_constituency"`
	ParliamentaryConstituency string `json:"parliamentary_constituency"`
}

type CastVoteRequest struct {
	ElectionID    string `json:"election_id"`
	EpicID        string `json:"epic_id"`
	CandidateName string `json:"candidate_name"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	Message    string `json:"message"`
}

type RegisterVoterResponse struct {
	EpicID  string `json:"epic_id"`
	Message string `json:"message"`
}

type CastVoteResponse struct {
	Message       string `json:"message"`
	Candidate     string `json:"candidate"`
	TransactionID string `json:"transaction_id"`
}

type CheckVoteResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Details *VoteDetails `json:"details,omitempty"`
}

type VoteDetails struct {
	EpicID        string `json:"epic_id"`
	Candidate     string `json:"candidate"`
	TransactionID string `json:"transaction_id"`
}

type ResultsResponse struct {
	ElectionID string           `json:"election_id"`
	Results    []CandidateCount `json:"results"`
}

type LedgerStatsResponse struct {
	Height       int64  `json:"height"`
	LatestHash   string `json:"latest_hash,omitempty"`
	LastAppended string `json:"last_appended,omitempty"`
	Empty        bool   `json:"empty"`
}

type LedgerVerifyResponse struct {
	Valid     bool   `json:"valid"`
	Blocks    int64  `json:"blocks"`
	BadHeight int64  `json:"bad_height,omitempty"`
	BadReason string `json:"bad_reason,omitempty"`
}

// Domain types

type Election struct {
	ID           string      `json:"id"`
	ElectionType string      `json:"election_type"`
	State        string      `json:"state"`
	District     string      `json:"district"`
	Constituency string      `json:"constituency"`
	ElectionDate time.Time   `json:"election_date"`
	CreatedAt    time.Time   `json:"created_at"`
	Candidates   []Candidate `json:"candidates"`
}

type Candidate struct {
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	SymbolURL  string `json:"symbol_url,omitempty"`
}

type Voter struct {
	EpicID                    string    `json:"epic_id"`
	Name                      string    `json:"name"`
	AssemblyConstituency      string    `json:"assembly_constituency"`
	ParliamentaryConstituency string    `json:"parliamentary_constituency"`
	CreatedAt                 time.Time `json:"created_at"`
}

type VoteEntry struct {
	ElectionID    string    `json:"election_id"`
	EpicID        string    `json:"epic_id"`
	Candidate     string    `json:"candidate"`
	TransactionID string    `json:"transaction_id"`
	CastAt        time.Time `json:"cast_at"`
}

type CandidateCount struct {
	Candidate string `json:"candidate"`
	Count     int    `json:"count"`
}

// Reconciliation result types

type VerifiedVote struct {
	TransactionID string `json:"transaction_id"`
	EpicID        string `json:"epic_id"`
	Candidate     string `json:"candidate"`
}

type CorrectedVote struct {
	TransactionID string `json:"transaction_id"`
	Old           string `json:"old"` // pre-correction "EPIC-candidate" key
	New           string `json:"new"` // ledger's authoritative key
}

type ReconcileResponse struct {
	Status         string          `json:"status"`
	VerifiedCount  int             `json:"verified_count"`
	CorrectedCount int             `json:"corrected_count"`
	Corrected      []CorrectedVote `json:"corrected"`
	Verified       []VerifiedVote  `json:"verified"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
