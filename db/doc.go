// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - election: Election metadata and constituency
  - candidate: Candidates standing in each election
  - voter: Electoral roll keyed by EPIC id
  - vote: The mutable vote store used for tallying and display
  - ledger_block: The append-only hash-chained ledger

# Relationships

	election 1──* candidate
	election 1──* vote
	vote 1──1 ledger_block (via transaction_id)

The vote table's PRIMARY KEY (election_id, epic_id) is the double-voting
invariant: the database refuses a second vote row for the same voter in the
same election even if two casts race past the application-level check.

The ledger_block table has no foreign keys on purpose: the chain is global
across elections and must out-live any election row. Its height column is
assigned by the ledger, not the database, so the same schema works on both
SQLite and PostgreSQL.
*/
package db
