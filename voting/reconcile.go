// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/matdaan/server/models"
)

// ReconcileResult is the integrity report for one election. Verified and
// Corrected preserve the scan order of the vote store.
type ReconcileResult struct {
	Verified  []models.VerifiedVote
	Corrected []models.CorrectedVote
}

// Reconcile cross-checks every vote in the election against the ledger and
// repairs the vote store in place. The ledger is authoritative: on a
// mismatch the vote row's epic_id and candidate are overwritten with the
// ledger's values. Votes whose transaction id is missing from the ledger are
// unverifiable; they are logged and counted in neither bucket. A failure on
// one entry never aborts the scan of the rest.
//
// Running Reconcile twice with no intervening casts corrects nothing the
// second time: the first pass leaves the store matching the ledger.
func (s *Service) Reconcile(electionID string) (ReconcileResult, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)
	`, electionID).Scan(&exists)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to query election: %w", err)
	}
	if !exists {
		return ReconcileResult{}, ErrElectionNotFound
	}

	rows, err := s.db.Query(`
		SELECT epic_id, candidate, transaction_id
		FROM vote
		WHERE election_id = $1
		ORDER BY cast_at, transaction_id
	`, electionID)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to read vote store: %w", err)
	}

	type storedVote struct {
		epicID, candidate, transactionID string
	}
	var votes []storedVote
	for rows.Next() {
		var v storedVote
		if err := rows.Scan(&v.epicID, &v.candidate, &v.transactionID); err != nil {
			rows.Close()
			return ReconcileResult{}, fmt.Errorf("failed to scan vote row: %w", err)
		}
		votes = append(votes, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to read vote store: %w", err)
	}

	slog.Info("starting integrity check", "election_id", electionID, "votes", len(votes))

	result := ReconcileResult{
		Verified:  []models.VerifiedVote{},
		Corrected: []models.CorrectedVote{},
	}

	for _, v := range votes {
		if v.transactionID == "" {
			continue
		}

		block, ok, err := s.chain.Lookup(v.transactionID)
		if err != nil {
			slog.Warn("ledger lookup failed, skipping entry", "transaction_id", v.transactionID, "error", err)
			continue
		}
		if !ok {
			slog.Warn("transaction not found in ledger", "transaction_id", v.transactionID)
			continue
		}

		storeKey := voteKey(v.epicID, v.candidate)
		ledgerKey := voteKey(block.EpicID, block.Candidate)

		if storeKey == ledgerKey {
			result.Verified = append(result.Verified, models.VerifiedVote{
				TransactionID: v.transactionID,
				EpicID:        v.epicID,
				Candidate:     v.candidate,
			})
			continue
		}

		slog.Warn("vote store diverges from ledger", "transaction_id", v.transactionID, "store", storeKey, "ledger", ledgerKey)

		// Conditional update matching on transaction_id so a racing
		// correction cannot clobber a different row.
		_, err = s.db.Exec(`
			UPDATE vote
			SET epic_id = $1, candidate = $2
			WHERE election_id = $3 AND transaction_id = $4
		`, block.EpicID, block.Candidate, electionID, v.transactionID)
		if err != nil {
			slog.Error("failed to correct vote row", "transaction_id", v.transactionID, "error", err)
			continue
		}

		result.Corrected = append(result.Corrected, models.CorrectedVote{
			TransactionID: v.transactionID,
			Old:           storeKey,
			New:           ledgerKey,
		})
	}

	slog.Info("integrity check completed",
		"election_id", electionID,
		"verified", len(result.Verified),
		"corrected", len(result.Corrected),
	)
	return result, nil
}

// voteKey forms the canonical comparison key for a vote.
func voteKey(epicID, candidate string) string {
	return strings.TrimSpace(epicID) + "-" + strings.TrimSpace(candidate)
}
