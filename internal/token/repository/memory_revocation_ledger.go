// Package repository provides revocation ledger storage.
package repository

import (
	"sync"
	"time"

	"github.com/allisson/jwtservice/internal/token/domain"
)

// MemoryRevocationLedger keeps revoked credentials in process memory. Safe for concurrent use.
type MemoryRevocationLedger struct {
	mu      sync.RWMutex
	entries map[string]*domain.RevokedToken
}

// NewMemoryRevocationLedger creates an empty ledger.
func NewMemoryRevocationLedger() *MemoryRevocationLedger {
	return &MemoryRevocationLedger{
		entries: make(map[string]*domain.RevokedToken),
	}
}

// Contains reports whether the exact credential string has been revoked.
func (l *MemoryRevocationLedger) Contains(token string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.entries[token]
	return ok
}

// Add records a revoked credential. Adding the same credential again keeps the first entry.
func (l *MemoryRevocationLedger) Add(entry *domain.RevokedToken) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[entry.Token]; ok {
		return
	}
	l.entries[entry.Token] = entry
}

// Len returns the number of revoked credentials.
func (l *MemoryRevocationLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// PruneExpired removes entries whose own exp is at or before now and returns how many were removed.
// Entries without exp are never removed.
func (l *MemoryRevocationLedger) PruneExpired(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for token, entry := range l.entries {
		if entry.IsExpired(now) {
			delete(l.entries, token)
			removed++
		}
	}
	return removed
}
