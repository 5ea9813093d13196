// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the append-only, hash-chained vote ledger.

# The Chain

Every cast vote becomes one immutable Block. Each block's current_hash is
computed over its payload (epic_id|candidate|election_id|transaction_id)
concatenated with the previous block's current_hash, so any later edit to a
block breaks every link after it. The first block chains to the fixed
GenesisHash sentinel. The chain is strictly global: blocks from different
elections interleave in one sequence ordered by height.

This is a single-writer hash chain, not a distributed blockchain: there is no
consensus, no mining, and no replication. Its job is to be an integrity
backbone the mutable vote store can be reconciled against.

# Backends

Chain is the contract; two backends implement it:

  - Store: SQL-backed, used in production. Appends are serialized by a
    process-wide mutex because chaining requires read-head-then-insert.
  - Memory: in-memory, used by unit tests.

Callers (the casting protocol, the reconciler, the stats endpoints) accept a
Chain and never care which backend is behind it.

# Lookup Semantics

A missing transaction id is a typed absence (ok == false, nil error), not an
error. The reconciler treats absence as "unverifiable" and moves on; only a
failing backend read is an actual error.
*/
package ledger
