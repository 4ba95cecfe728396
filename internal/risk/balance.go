package risk

import (
	"sync"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// Balances holds one free-balance counter per venue: "the per-venue free
// balance counter is mutated only by the Risk Engine (reservation) and the
// Coordinator (release on terminal state)". A single monotonic
// counter per venue, decremented on Reserve and credited back on Release.
type Balances struct {
	mu   sync.Mutex
	free map[bookkeeping.Venue]money.Cents
}

// NewBalances seeds one counter per venue from the given starting balances.
func NewBalances(starting map[bookkeeping.Venue]money.Cents) *Balances {
	free := make(map[bookkeeping.Venue]money.Cents, len(starting))
	for v, c := range starting {
		free[v] = c
	}
	return &Balances{free: free}
}

// Free returns the current free balance for venue.
func (b *Balances) Free(venue bookkeeping.Venue) money.Cents {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.free[venue]
}

// Reserve atomically decrements venue's free balance by amount if and only
// if the full amount is available; returns false (no mutation) otherwise.
// This is the only mutation path the Risk Engine is permitted to use.
func (b *Balances) Reserve(venue bookkeeping.Venue, amount money.Cents) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.free[venue] < amount {
		return false
	}
	b.free[venue] -= amount
	return true
}

// Release credits amount back to venue's free balance. The Coordinator calls
// this when an arb aborts, merges, settles without a merge, or finishes
// hedging; after a failed CTF merge (CLOSED_AT_LOSS with both legs filled)
// the reservation is not released.
func (b *Balances) Release(venue bookkeeping.Venue, amount money.Cents) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.free[venue] += amount
}
