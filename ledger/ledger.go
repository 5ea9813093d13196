// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// GenesisHash is the previous_hash sentinel for the first block in the chain.
const GenesisHash = "GENESIS_BLOCK"

// payloadDelimiter separates fields in the hashed payload string. Fields
// containing it are rejected rather than escaped.
const payloadDelimiter = "|"

var ErrReservedDelimiter = errors.New("ledger: field contains reserved delimiter '|'")

// Block is one entry in the hash-chained ledger. Blocks are immutable once
// appended: nothing in this package (or anywhere else) updates or deletes one.
type Block struct {
	Height        int64     `json:"height"`
	TransactionID string    `json:"transaction_id"`
	EpicID        string    `json:"epic_id"`
	Candidate     string    `json:"candidate"`
	ElectionID    string    `json:"election_id"`
	PreviousHash  string    `json:"previous_hash"`
	CurrentHash   string    `json:"current_hash"`
	CreatedAt     time.Time `json:"created_at"`
}

// VerifyResult reports the outcome of a full chain walk.
type VerifyResult struct {
	Valid     bool
	Blocks    int64
	BadHeight int64  // height of the first bad block, 0 when valid
	BadReason string // empty when valid
}

// Chain is the ledger contract the casting protocol and reconciler depend on.
// Append and Lookup carry the casting and reconciliation paths; Head, Count,
// and Verify serve the stats and audit endpoints. Implementations must serialize Append calls
// so that previous_hash chaining never races.
type Chain interface {
	// Append extends the global chain by exactly one block and returns the
	// new block's transaction id. The chain is global: previous_hash comes
	// from the most recent block across all elections, not just electionID's.
	Append(epicID, candidate, electionID string) (string, error)

	// Lookup returns the block for a transaction id. Absence is not an
	// error: it returns ok=false with a nil error.
	Lookup(transactionID string) (Block, bool, error)

	// Head returns the most recently appended block, ok=false when empty.
	Head() (Block, bool, error)

	// Count returns the number of blocks in the chain.
	Count() (int64, error)

	// Verify recomputes every hash and prev-hash link in height order.
	Verify() (VerifyResult, error)
}

// BlockHash computes the block digest: hex(sha256(payload || prevHash)).
func BlockHash(payload, prevHash string) string {
	sum := sha256.Sum256([]byte(payload + prevHash))
	return hex.EncodeToString(sum[:])
}

// payloadString joins the block fields into the deterministic string that
// gets hashed. The caller must have rejected fields containing the delimiter.
func payloadString(epicID, candidate, electionID, transactionID string) string {
	return strings.Join([]string{epicID, candidate, electionID, transactionID}, payloadDelimiter)
}

// checkFields rejects payload fields that contain the delimiter, which would
// make the payload string ambiguous.
func checkFields(fields ...string) error {
	for _, f := range fields {
		if strings.Contains(f, payloadDelimiter) {
			return ErrReservedDelimiter
		}
	}
	return nil
}

// verifyBlocks walks an in-order slice of blocks and validates every hash and
// link. Shared by the SQL and in-memory backends.
func verifyBlocks(blocks []Block) VerifyResult {
	res := VerifyResult{Valid: true, Blocks: int64(len(blocks))}

	prevHash := GenesisHash
	var prevHeight int64
	for _, b := range blocks {
		if b.Height != prevHeight+1 {
			return VerifyResult{Blocks: res.Blocks, BadHeight: b.Height, BadReason: "height gap"}
		}
		if b.PreviousHash != prevHash {
			return VerifyResult{Blocks: res.Blocks, BadHeight: b.Height, BadReason: "broken previous_hash link"}
		}
		payload := payloadString(b.EpicID, b.Candidate, b.ElectionID, b.TransactionID)
		if BlockHash(payload, b.PreviousHash) != b.CurrentHash {
			return VerifyResult{Blocks: res.Blocks, BadHeight: b.Height, BadReason: "hash mismatch"}
		}
		prevHash = b.CurrentHash
		prevHeight = b.Height
	}

	return res
}
