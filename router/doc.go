// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ ServeMux patterns.

# Routes

Election management:

	POST /elections
	GET  /elections
	GET  /elections/{id}

Electoral roll:

	POST /voters
	GET  /voters/{epicID}

Voting:

	POST /votes/cast
	GET  /votes/check/{electionID}/{epicID}
	GET  /votes/results/{electionID}

Integrity:

	POST /elections/{id}/verify-integrity
	GET  /ledger/stats
	GET  /ledger/verify

NewRouter wires the voting service from the injected database handle and
ledger chain, so main stays the only place dependencies are constructed.
*/
package router
