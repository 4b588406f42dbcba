package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// LogEntry is a single record in the settlement decision trail.
type LogEntry struct {
	Seq          uint64 `json:"seq"`
	Timestamp    string `json:"timestamp"`
	PreviousHash string `json:"previous_hash"`
	Payload      string `json:"payload"`
	Hash         string `json:"hash"`
}

// ChainLogger records settlement decisions as a hash chain so that any
// after-the-fact edit breaks verification from that entry onward.
type ChainLogger struct {
	mu           sync.Mutex
	previousHash string
	nextSeq      uint64
	entries      []*LogEntry
}

// NewChainLogger creates a ChainLogger anchored at a zero hash.
func NewChainLogger() *ChainLogger {
	return &ChainLogger{
		previousHash: strings.Repeat("0", 64),
	}
}

// Append adds a new entry to the chain and retains it for later export.
func (c *ChainLogger) Append(payload string) *LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &LogEntry{
		Seq:          c.nextSeq,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		PreviousHash: c.previousHash,
		Payload:      payload,
	}
	entry.Hash = entryHash(entry)

	c.previousHash = entry.Hash
	c.nextSeq++
	c.entries = append(c.entries, entry)
	return entry
}

// Entries returns a copy of the retained chain for export or verification.
func (c *ChainLogger) Entries() []*LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*LogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func entryHash(e *LogEntry) string {
	hashInput := fmt.Sprintf("%d|%s|%s|%s", e.Seq, e.PreviousHash, e.Timestamp, e.Payload)
	hash := sha256.Sum256([]byte(hashInput))
	return hex.EncodeToString(hash[:])
}

// VerifyChain checks that a slice of entries forms an unbroken hash chain.
func VerifyChain(entries []*LogEntry) bool {
	for i, entry := range entries {
		if i > 0 && entry.PreviousHash != entries[i-1].Hash {
			return false
		}
		if entryHash(entry) != entry.Hash {
			return false
		}
	}
	return true
}
