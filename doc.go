// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Matdaan election API server.

Matdaan is an election-management backend with a vote-integrity core: every
cast vote is written twice - once to an append-only, hash-chained ledger
(the source of truth) and once to a mutable vote store used for tallying and
display. A reconciliation endpoint cross-checks the store against the ledger
and repairs any divergence in place.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=matdaan.db go run .

Or with flags:

	go run . -p 8390 -d matdaan.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): server port (default: 8390)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

A .env file in the working directory is loaded automatically.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ledger: the append-only hash chain (SQL and in-memory backends)
  - voting: the casting protocol, reconciler, tally, and voted-check
  - handlers: HTTP request handlers (elections, voters, votes, integrity)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
