package session

import (
	"sync"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// Store holds the operator's plan inputs keyed by quarter ID. Entries are
// replaced whole through SetPlan; reads hand back sanitized copies so
// downstream math never sees NaN hours or a non-positive rate.
type Store struct {
	mu    sync.RWMutex
	plans map[string]domain.QuarterPlan
}

// NewStore creates an empty plan store.
func NewStore() *Store {
	return &Store{plans: make(map[string]domain.QuarterPlan)}
}

// Plan returns the sanitized plan for a quarter. An unset quarter reads as
// zero hours at the default rate.
func (s *Store) Plan(quarterID string) domain.QuarterPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plans[quarterID].Sanitize()
}

// SetPlan replaces the plan entry for a quarter.
func (s *Store) SetPlan(quarterID string, plan domain.QuarterPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[quarterID] = plan
}

// All returns a copy of every entry, keyed by quarter ID. The copy is safe
// to hand to the pure planning functions while edits continue.
func (s *Store) All() map[string]domain.QuarterPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.QuarterPlan, len(s.plans))
	for id, p := range s.plans {
		out[id] = p
	}
	return out
}

// ReplaceAll swaps in a full set of plan entries, discarding the old ones.
// Used when an auto-balance pass produces a fresh allocation.
func (s *Store) ReplaceAll(plans map[string]domain.QuarterPlan) {
	next := make(map[string]domain.QuarterPlan, len(plans))
	for id, p := range plans {
		next[id] = p
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = next
}
