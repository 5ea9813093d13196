// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    election_type TEXT NOT NULL,
    state TEXT NOT NULL,
    district TEXT NOT NULL,
    constituency TEXT NOT NULL,
    election_date TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_election_constituency ON election(constituency);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    symbol_url TEXT,
    PRIMARY KEY (election_id, name)
);

-- Voters (electoral roll)
CREATE TABLE IF NOT EXISTS voter (
    epic_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    assembly_constituency TEXT NOT NULL,
    parliamentary_constituency TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Votes (mutable display store; one vote per voter per election)
CREATE TABLE IF NOT EXISTS vote (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    epic_id TEXT NOT NULL,
    candidate TEXT NOT NULL,
    transaction_id TEXT NOT NULL UNIQUE,
    cast_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (election_id, epic_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_election_id ON vote(election_id);

-- Ledger blocks (append-only; rows are never updated or deleted)
CREATE TABLE IF NOT EXISTS ledger_block (
    height INTEGER PRIMARY KEY,
    transaction_id TEXT NOT NULL UNIQUE,
    epic_id TEXT NOT NULL,
    candidate TEXT NOT NULL,
    election_id TEXT NOT NULL,
    previous_hash TEXT NOT NULL,
    current_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
