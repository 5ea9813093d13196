// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the Matdaan API.

# Domain Types

  - Election: an election with its candidate list and constituency
  - Candidate: a candidate standing in one election
  - Voter: an electoral-roll entry keyed by EPIC id
  - VoteEntry: one cast vote in the mutable vote store
  - CandidateCount: a tally row

# Canonical Field Names

Earlier revisions of this system used several aliases for the same concept
(candidate_name vs candidateName vs candidate, txn vs transaction_id). The
types here are the single canonical shape: "candidate" for the candidate as
cast, "transaction_id" for the ledger link. Request types keep the wire names
clients already send (candidate_name on cast requests).

# Reconciliation Types

VerifiedVote and CorrectedVote mirror the integrity report produced by the
reconciler: verified entries carry the vote as stored, corrected entries carry
old/new "EPIC-candidate" keys so an operator can see exactly what was repaired.
*/
package models
