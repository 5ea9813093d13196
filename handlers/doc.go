// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Matdaan API.

# Handler Types

  - ElectionHandler: election creation and retrieval
  - VoterHandler: electoral-roll registration and lookup
  - VoteHandler: vote casting, voted-check, and tallying
  - IntegrityHandler: ledger reconciliation, stats, and chain verification

Handlers own only HTTP concerns (parsing, validation, status codes); the
casting protocol and reconciler live in the voting package and the hash chain
in the ledger package. writeVotingError is the single place service errors
map to status codes: not-found conditions are 404, double votes are 409,
constituency mismatches are 403, everything else is 500.
*/
package handlers
