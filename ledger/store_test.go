// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger_test

import (
	"testing"

	"github.com/matdaan/server/ledger"
	"github.com/matdaan/server/testutil"
)

func TestStoreAppendAndChaining(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewStore(db)

	// Two blocks for different elections: the chain is global
	txn1, err := chain.Append("EPIC001", "Asha Rao", "election-1")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	txn2, err := chain.Append("EPIC002", "Vikram Joshi", "election-2")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if txn1 == txn2 {
		t.Fatal("Transaction ids must be unique")
	}

	b1, ok, err := chain.Lookup(txn1)
	if err != nil || !ok {
		t.Fatalf("Lookup(txn1) = ok=%v err=%v", ok, err)
	}
	b2, ok, err := chain.Lookup(txn2)
	if err != nil || !ok {
		t.Fatalf("Lookup(txn2) = ok=%v err=%v", ok, err)
	}

	if b1.PreviousHash != ledger.GenesisHash {
		t.Errorf("First block should chain to genesis, got %q", b1.PreviousHash)
	}
	if b2.PreviousHash != b1.CurrentHash {
		t.Error("Second block's previous_hash should equal first block's current_hash")
	}

	// Head and count agree with the inserts
	head, ok, err := chain.Head()
	if err != nil || !ok {
		t.Fatalf("Head() = ok=%v err=%v", ok, err)
	}
	if head.TransactionID != txn2 {
		t.Errorf("Head should be the last appended block")
	}
	if n, err := chain.Count(); err != nil || n != 2 {
		t.Errorf("Count() = %d, %v; want 2", n, err)
	}
}

func TestStoreHashRecomputable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewStore(db)

	txn, err := chain.Append("EPIC001", "Asha Rao", "election-1")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	b, ok, err := chain.Lookup(txn)
	if err != nil || !ok {
		t.Fatalf("Lookup = ok=%v err=%v", ok, err)
	}

	// current_hash depends only on the stored payload fields and prev hash
	payload := b.EpicID + "|" + b.Candidate + "|" + b.ElectionID + "|" + b.TransactionID
	if ledger.BlockHash(payload, b.PreviousHash) != b.CurrentHash {
		t.Error("Stored hash does not match recomputed digest")
	}
}

func TestStoreEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewStore(db)

	if _, ok, err := chain.Head(); err != nil || ok {
		t.Errorf("Empty chain Head() = ok=%v err=%v; want ok=false, nil", ok, err)
	}
	if _, ok, err := chain.Lookup("no-such-txn"); err != nil || ok {
		t.Errorf("Unknown Lookup() = ok=%v err=%v; want ok=false, nil", ok, err)
	}
	if n, err := chain.Count(); err != nil || n != 0 {
		t.Errorf("Empty Count() = %d, %v; want 0", n, err)
	}

	res, err := chain.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !res.Valid || res.Blocks != 0 {
		t.Errorf("Empty chain should verify, got %+v", res)
	}
}

func TestStoreVerify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	chain := ledger.NewStore(db)

	var lastTxn string
	for i := 0; i < 4; i++ {
		txn, err := chain.Append("EPIC00"+string(rune('1'+i)), "Asha Rao", "election-1")
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		lastTxn = txn
	}

	res, err := chain.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !res.Valid || res.Blocks != 4 {
		t.Fatalf("Expected valid 4-block chain, got %+v", res)
	}

	// Tamper with a stored block directly; Verify must catch it
	if _, err := db.Exec(`UPDATE ledger_block SET candidate = 'Someone Else' WHERE transaction_id = $1`, lastTxn); err != nil {
		t.Fatalf("Failed to tamper with block: %v", err)
	}

	res, err = chain.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if res.Valid {
		t.Error("Verify accepted a tampered chain")
	}
	if res.BadHeight != 4 || res.BadReason != "hash mismatch" {
		t.Errorf("Expected hash mismatch at height 4, got %+v", res)
	}
}
