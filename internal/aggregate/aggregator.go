// Package aggregate fans a combined games query out to the registered
// league adapters and merges the results under partial failure.
package aggregate

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/XavierBriggs/Scoreline/internal/registry"
	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
)

// DaySelector picks the calendar date of a combined query.
type DaySelector int

const (
	Today DaySelector = iota
	Yesterday
)

// LeagueFilter restricts a combined query to one league or both.
type LeagueFilter int

const (
	FilterAll LeagueFilter = iota
	FilterBaseball
	FilterBasketball
)

// Leagues returns the leagues the filter selects, in fixed rendering
// order.
func (f LeagueFilter) Leagues() []models.League {
	switch f {
	case FilterBaseball:
		return []models.League{models.Baseball}
	case FilterBasketball:
		return []models.League{models.Basketball}
	}
	return models.LeagueOrder()
}

// Aggregator runs the per-league pipelines concurrently and merges their
// outputs. It holds no state beyond its collaborators; every invocation
// constructs fresh model values.
type Aggregator struct {
	registry *registry.LeagueRegistry
	now      func() time.Time
}

// New creates an aggregator over the registered adapters.
func New(reg *registry.LeagueRegistry) *Aggregator {
	return &Aggregator{registry: reg, now: time.Now}
}

// leagueResult carries one league's pipeline outcome back to the merge
// step.
type leagueResult struct {
	league models.League
	games  []models.Game
	err    error
}

// GetGamesForDate lists (and optionally enriches) the games for the
// selected day across the filtered leagues. One league failing degrades
// to a warning section; only when every requested league fails does the
// call itself fail, with an aggregate error carrying all sub-errors.
func (a *Aggregator) GetGamesForDate(ctx context.Context, day DaySelector, filter LeagueFilter, detailed bool) (*models.CombinedReport, error) {
	const op = "aggregate: games for date"

	// Resolve the date exactly once so both leagues see the same day
	// even if the process straddles midnight mid-call.
	date := models.DateOf(a.now())
	if day == Yesterday {
		date = date.AddDays(-1)
	}

	leagues := a.requestedLeagues(filter)
	if len(leagues) == 0 {
		return nil, sporterr.Errorf(sporterr.KindConfig, op, "no adapter registered for requested league")
	}

	results := make(chan leagueResult, len(leagues))
	var wg sync.WaitGroup
	for _, league := range leagues {
		adapter, _ := a.registry.Get(league)
		wg.Add(1)
		go func(league models.League) {
			defer wg.Done()
			games, err := adapter.ListGames(ctx, date)
			if err == nil {
				games, err = adapter.Enrich(ctx, games, detailed)
			}
			if err != nil {
				log.Printf("[%s] games for %s failed: %v", league, date, err)
			}
			results <- leagueResult{league: league, games: games, err: err}
		}(league)
	}
	wg.Wait()
	close(results)

	// Re-associate results by league so output ordering is never a
	// function of completion order.
	byLeague := make(map[models.League]leagueResult, len(leagues))
	for res := range results {
		byLeague[res.league] = res
	}

	if err := ctx.Err(); err != nil {
		return nil, sporterr.E(sporterr.KindCancelled, op, err)
	}

	report := &models.CombinedReport{Date: date, Detailed: detailed}
	var failures []error
	for _, league := range leagues {
		res := byLeague[league]
		section := models.LeagueSection{League: league, Games: res.games, Err: res.err}
		if res.err != nil {
			section.Games = nil
			failures = append(failures, res.err)
		}
		report.Sections = append(report.Sections, section)
	}

	if len(failures) == len(leagues) {
		return nil, sporterr.Aggregate(op, failures...)
	}
	return report, nil
}

// requestedLeagues intersects the filter with the registered adapters,
// preserving the fixed league order.
func (a *Aggregator) requestedLeagues(filter LeagueFilter) []models.League {
	var leagues []models.League
	for _, league := range filter.Leagues() {
		if _, ok := a.registry.Get(league); ok {
			leagues = append(leagues, league)
		}
	}
	return leagues
}
