// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matdaan/server/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// A single connection keeps the :memory: database alive and serializes
// concurrent statements, which is what the production store guarantees too.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestElection creates an election with the given candidates and
// returns its ID. The election's constituency defaults to "Hubballi".
func CreateTestElection(t *testing.T, conn *sql.DB, candidates ...string) string {
	t.Helper()

	electionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO election (id, election_type, state, district, constituency, election_date, created_at)
		VALUES ($1, 'State Assembly', 'Karnataka', 'Dharwad', 'Hubballi', $2, $3)
	`, electionID, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	for _, name := range candidates {
		_, err := conn.Exec(`
			INSERT INTO candidate (election_id, name, party, symbol_url)
			VALUES ($1, $2, 'Test Party', '')
		`, electionID, name)
		if err != nil {
			t.Fatalf("Failed to create test candidate: %v", err)
		}
	}

	return electionID
}

// RegisterTestVoter adds an electoral-roll entry whose assembly constituency
// matches CreateTestElection's default.
func RegisterTestVoter(t *testing.T, conn *sql.DB, epicID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (epic_id, name, assembly_constituency, parliamentary_constituency, created_at)
		VALUES ($1, 'Test Voter', 'Hubballi', 'Dharwad Lok Sabha', $2)
	`, epicID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to register test voter: %v", err)
	}
}

// CorruptVote rewrites a vote row's candidate directly, bypassing the
// casting protocol, to simulate display-store tampering.
func CorruptVote(t *testing.T, conn *sql.DB, transactionID, candidate string) {
	t.Helper()

	res, err := conn.Exec(`
		UPDATE vote SET candidate = $1 WHERE transaction_id = $2
	`, candidate, transactionID)
	if err != nil {
		t.Fatalf("Failed to corrupt vote: %v", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		t.Fatalf("Expected to corrupt 1 vote, affected %d", n)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
