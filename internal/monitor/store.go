package monitor

import (
	"sort"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Snapshot is the outcome of one monitor cycle.
type Snapshot struct {
	CycleID    string
	StartedAt  time.Time
	FinishedAt time.Time
	MarketOpen bool
	Results    map[string]*analysis.Result
	// Errors holds the reason an instrument produced no result.
	Errors map[string]string
}

// Store keeps the latest snapshot in memory. Past cycles are not retained.
type Store struct {
	mu     sync.RWMutex
	latest *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Update replaces the latest snapshot.
func (s *Store) Update(snapshot *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = snapshot
}

// Latest returns the latest snapshot, if a cycle has completed.
func (s *Store) Latest() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latest, s.latest != nil
}

// Recommendation returns the latest recommendation of symbol.
func (s *Store) Recommendation(symbol string) (analysis.Recommendation, bool) {
	result, ok := s.result(symbol)
	if !ok {
		return analysis.Recommendation{}, false
	}

	return result.Recommendation, true
}

// Recommendations returns every latest recommendation ordered by symbol.
func (s *Store) Recommendations() []analysis.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return nil
	}

	recommendations := make([]analysis.Recommendation, 0, len(s.latest.Results))
	for _, result := range s.latest.Results {
		recommendations = append(recommendations, result.Recommendation)
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].Symbol < recommendations[j].Symbol
	})

	return recommendations
}

// Rows returns the signal frame of symbol from the latest cycle.
func (s *Store) Rows(symbol string) ([]types.SignalRow, bool) {
	result, ok := s.result(symbol)
	if !ok {
		return nil, false
	}

	return result.Rows, true
}

func (s *Store) result(symbol string) (*analysis.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return nil, false
	}

	result, ok := s.latest.Results[symbol]

	return result, ok
}
