// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Chain. It backs unit tests and demonstrates that the
// casting protocol and reconciler only depend on the Chain contract, not on
// which backend holds the blocks.
type Memory struct {
	mu     sync.RWMutex
	blocks []Block
	byTxn  map[string]int
}

func NewMemory() *Memory {
	return &Memory{byTxn: make(map[string]int)}
}

func (m *Memory) Append(epicID, candidate, electionID string) (string, error) {
	if err := checkFields(epicID, candidate, electionID); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	transactionID := uuid.NewString()

	prevHash := GenesisHash
	var height int64 = 1
	if n := len(m.blocks); n > 0 {
		prevHash = m.blocks[n-1].CurrentHash
		height = m.blocks[n-1].Height + 1
	}

	payload := payloadString(epicID, candidate, electionID, transactionID)
	b := Block{
		Height:        height,
		TransactionID: transactionID,
		EpicID:        epicID,
		Candidate:     candidate,
		ElectionID:    electionID,
		PreviousHash:  prevHash,
		CurrentHash:   BlockHash(payload, prevHash),
		CreatedAt:     time.Now().UTC(),
	}

	m.byTxn[transactionID] = len(m.blocks)
	m.blocks = append(m.blocks, b)
	return transactionID, nil
}

func (m *Memory) Lookup(transactionID string) (Block, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byTxn[transactionID]
	if !ok {
		return Block{}, false, nil
	}
	return m.blocks[i], true, nil
}

func (m *Memory) Head() (Block, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.blocks) == 0 {
		return Block{}, false, nil
	}
	return m.blocks[len(m.blocks)-1], true, nil
}

func (m *Memory) Count() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.blocks)), nil
}

func (m *Memory) Verify() (VerifyResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return verifyBlocks(m.blocks), nil
}

// Tamper overwrites a stored block's candidate without re-hashing. Test hook
// for exercising Verify and the reconciler against a corrupted source.
func (m *Memory) Tamper(transactionID, candidate string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.byTxn[transactionID]
	if !ok {
		return false
	}
	m.blocks[i].Candidate = candidate
	return true
}
