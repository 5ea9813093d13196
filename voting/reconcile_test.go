// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matdaan/server/ledger"
	"github.com/matdaan/server/testutil"
	"github.com/matdaan/server/voting"
)

func TestReconcileCorrectsCorruptedVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewMemory()
	svc := voting.NewService(db, chain)

	electionID := testutil.CreateTestElection(t, db, "Asha Rao", "Vikram Joshi")

	cast, err := svc.CastVote(electionID, "EPIC001", "Asha Rao")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	// Corrupt the display store; the ledger still says Asha Rao
	testutil.CorruptVote(t, db, cast.TransactionID, "Vikram Joshi")

	result, err := svc.Reconcile(electionID)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(result.Verified) != 0 {
		t.Errorf("Expected no verified entries, got %d", len(result.Verified))
	}
	if len(result.Corrected) != 1 {
		t.Fatalf("Expected 1 corrected entry, got %d", len(result.Corrected))
	}

	c := result.Corrected[0]
	if c.TransactionID != cast.TransactionID {
		t.Errorf("Corrected entry has wrong transaction id: %s", c.TransactionID)
	}
	if c.Old != "EPIC001-Vikram Joshi" {
		t.Errorf("Expected old key 'EPIC001-Vikram Joshi', got %q", c.Old)
	}
	if c.New != "EPIC001-Asha Rao" {
		t.Errorf("Expected new key 'EPIC001-Asha Rao', got %q", c.New)
	}

	// The store now matches the ledger and the tally is restored
	tally, err := svc.Tally(electionID)
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if len(tally) != 1 || tally[0].Candidate != "Asha Rao" || tally[0].Count != 1 {
		t.Errorf("Expected tally {Asha Rao: 1}, got %+v", tally)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewMemory()
	svc := voting.NewService(db, chain)

	electionID := testutil.CreateTestElection(t, db, "Asha Rao", "Vikram Joshi")

	cast, err := svc.CastVote(electionID, "EPIC001", "Asha Rao")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, err := svc.CastVote(electionID, "EPIC002", "Vikram Joshi"); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	testutil.CorruptVote(t, db, cast.TransactionID, "Vikram Joshi")

	first, err := svc.Reconcile(electionID)
	if err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}
	if len(first.Corrected) != 1 || len(first.Verified) != 1 {
		t.Fatalf("First run: expected 1 corrected and 1 verified, got %d and %d",
			len(first.Corrected), len(first.Verified))
	}

	second, err := svc.Reconcile(electionID)
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if len(second.Corrected) != 0 {
		t.Errorf("Second run must correct nothing, corrected %d", len(second.Corrected))
	}
	if len(second.Verified) != 2 {
		t.Errorf("Second run should verify both votes, verified %d", len(second.Verified))
	}
}

func TestReconcileSkipsUnverifiable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewMemory()
	svc := voting.NewService(db, chain)

	electionID := testutil.CreateTestElection(t, db, "Asha Rao")

	if _, err := svc.CastVote(electionID, "EPIC001", "Asha Rao"); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	// A vote row whose transaction id was never written to the ledger
	_, err := db.Exec(`
		INSERT INTO vote (election_id, epic_id, candidate, transaction_id, cast_at)
		VALUES ($1, 'EPIC002', 'Asha Rao', $2, $3)
	`, electionID, uuid.NewString(), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to insert orphan vote: %v", err)
	}

	result, err := svc.Reconcile(electionID)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	// The orphan is unverifiable: neither verified nor corrected
	if len(result.Verified) != 1 {
		t.Errorf("Expected 1 verified entry, got %d", len(result.Verified))
	}
	if len(result.Corrected) != 0 {
		t.Errorf("Expected no corrected entries, got %d", len(result.Corrected))
	}
}

func TestReconcilePreservesScanOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewMemory()
	svc := voting.NewService(db, chain)

	electionID := testutil.CreateTestElection(t, db, "Asha Rao")

	epics := []string{"EPIC001", "EPIC002", "EPIC003"}
	for _, epic := range epics {
		if _, err := svc.CastVote(electionID, epic, "Asha Rao"); err != nil {
			t.Fatalf("CastVote(%s) failed: %v", epic, err)
		}
		time.Sleep(2 * time.Millisecond) // distinct cast_at ordering
	}

	result, err := svc.Reconcile(electionID)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(result.Verified) != len(epics) {
		t.Fatalf("Expected %d verified entries, got %d", len(epics), len(result.Verified))
	}
	for i, epic := range epics {
		if result.Verified[i].EpicID != epic {
			t.Errorf("Verified[%d] = %s, want %s (cast order)", i, result.Verified[i].EpicID, epic)
		}
	}
}

func TestReconcileUnknownElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := voting.NewService(db, ledger.NewMemory())

	if _, err := svc.Reconcile("no-such-election"); !errors.Is(err, voting.ErrElectionNotFound) {
		t.Errorf("Expected ErrElectionNotFound, got %v", err)
	}
}
