// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the vote-casting protocol and the integrity
reconciler over the mutable vote store and the hash-chained ledger.

# Casting Protocol

CastVote is a strictly sequential double-entry write:

 1. validate the election exists
 2. validate the candidate stands in that election
 3. validate the voter has not already voted
 4. append an immutable block to the ledger
 5. insert the vote row, carrying the ledger's transaction id

Steps 1-3 short-circuit as client errors before any mutation. If step 4
fails, step 5 never runs, so the store has no orphan rows. The reverse is not
guarded: a crash between 4 and 5 orphans a ledger block.

The step-3 check is read-then-act with no lock. The real enforcement of one
vote per voter per election is the vote table's (election_id, epic_id)
primary key; a racing duplicate fails its insert and maps to ErrAlreadyVoted.

# Reconciliation

Reconcile scans an election's votes in cast order, looks each one up in the
ledger by transaction id, and overwrites any diverging row with the ledger's
values. The ledger always wins. Entries without a ledger block are
unverifiable - logged and excluded from both result buckets. The operation is
idempotent.

# Errors

Client-reportable conditions are sentinel errors (ErrElectionNotFound,
ErrCandidateNotFound, ErrAlreadyVoted, ErrVoterNotFound,
ErrWrongConstituency) matched with errors.Is; everything else is a wrapped
server error.
*/
package voting
