// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the SQL-backed Chain implementation. A process-wide mutex
// serializes appends: the read-last-block-then-insert sequence must not
// interleave or two blocks could claim the same previous_hash.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(epicID, candidate, electionID string) (string, error) {
	if err := checkFields(epicID, candidate, electionID); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transactionID := uuid.NewString()

	prevHash := GenesisHash
	var height int64 = 1
	head, ok, err := s.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read chain head: %w", err)
	}
	if ok {
		prevHash = head.CurrentHash
		height = head.Height + 1
	}

	payload := payloadString(epicID, candidate, electionID, transactionID)
	currentHash := BlockHash(payload, prevHash)

	_, err = s.db.Exec(`
		INSERT INTO ledger_block (height, transaction_id, epic_id, candidate, election_id, previous_hash, current_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, height, transactionID, epicID, candidate, electionID, prevHash, currentHash, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to append ledger block: %w", err)
	}

	slog.Info("block appended to ledger", "height", height, "transaction_id", transactionID)
	return transactionID, nil
}

func (s *Store) Lookup(transactionID string) (Block, bool, error) {
	var b Block
	err := s.db.QueryRow(`
		SELECT height, transaction_id, epic_id, candidate, election_id, previous_hash, current_hash, created_at
		FROM ledger_block
		WHERE transaction_id = $1
	`, transactionID).Scan(
		&b.Height, &b.TransactionID, &b.EpicID, &b.Candidate,
		&b.ElectionID, &b.PreviousHash, &b.CurrentHash, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return Block{}, false, nil
	}
	if err != nil {
		return Block{}, false, fmt.Errorf("failed to look up ledger block: %w", err)
	}
	return b, true, nil
}

func (s *Store) Head() (Block, bool, error) {
	var b Block
	err := s.db.QueryRow(`
		SELECT height, transaction_id, epic_id, candidate, election_id, previous_hash, current_hash, created_at
		FROM ledger_block
		ORDER BY height DESC
		LIMIT 1
	`).Scan(
		&b.Height, &b.TransactionID, &b.EpicID, &b.Candidate,
		&b.ElectionID, &b.PreviousHash, &b.CurrentHash, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return Block{}, false, nil
	}
	if err != nil {
		return Block{}, false, fmt.Errorf("failed to read chain head: %w", err)
	}
	return b, true, nil
}

func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ledger_block`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ledger blocks: %w", err)
	}
	return n, nil
}

func (s *Store) Verify() (VerifyResult, error) {
	rows, err := s.db.Query(`
		SELECT height, transaction_id, epic_id, candidate, election_id, previous_hash, current_hash, created_at
		FROM ledger_block
		ORDER BY height
	`)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("failed to read chain: %w", err)
	}
	defer rows.Close()

	var blocks []Block
	for rows.Next() {
		var b Block
		if err := rows.Scan(
			&b.Height, &b.TransactionID, &b.EpicID, &b.Candidate,
			&b.ElectionID, &b.PreviousHash, &b.CurrentHash, &b.CreatedAt,
		); err != nil {
			return VerifyResult{}, fmt.Errorf("failed to scan ledger block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return VerifyResult{}, fmt.Errorf("failed to read chain: %w", err)
	}

	return verifyBlocks(blocks), nil
}
