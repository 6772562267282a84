package registry

import (
	"fmt"
	"sync"

	"github.com/XavierBriggs/Scoreline/pkg/contracts"
	"github.com/XavierBriggs/Scoreline/pkg/models"
)

// LeagueRegistry holds the registered league adapters. Registration
// happens at startup; lookups after that are concurrent-safe.
type LeagueRegistry struct {
	adapters map[models.League]contracts.LeagueAdapter
	mu       sync.RWMutex
}

// NewLeagueRegistry creates an empty registry.
func NewLeagueRegistry() *LeagueRegistry {
	return &LeagueRegistry{
		adapters: make(map[models.League]contracts.LeagueAdapter),
	}
}

// Register adds an adapter for its league.
func (r *LeagueRegistry) Register(adapter contracts.LeagueAdapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	league := adapter.League()
	if _, exists := r.adapters[league]; exists {
		return fmt.Errorf("league %s is already registered", league)
	}

	r.adapters[league] = adapter
	return nil
}

// Get retrieves the adapter for a league.
func (r *LeagueRegistry) Get(league models.League) (contracts.LeagueAdapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[league]
	return adapter, exists
}

// Leagues returns the registered leagues in fixed rendering order, never
// in map iteration order.
func (r *LeagueRegistry) Leagues() []models.League {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var leagues []models.League
	for _, league := range models.LeagueOrder() {
		if _, exists := r.adapters[league]; exists {
			leagues = append(leagues, league)
		}
	}
	return leagues
}

// Count returns the number of registered leagues.
func (r *LeagueRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.adapters)
}
