package contracts

import (
	"context"

	"github.com/XavierBriggs/Scoreline/pkg/models"
)

// LeagueAdapter normalizes one provider's schema into the unified model.
// All methods construct fresh model values per call; adapters hold no
// mutable state, so concurrent calls are safe.
type LeagueAdapter interface {
	// League returns the league this adapter serves.
	League() models.League

	// GetPlayer returns a player with their full-season stat bag.
	GetPlayer(ctx context.Context, id int) (*models.Player, error)

	// GetTeam returns a team by provider id.
	GetTeam(ctx context.Context, id int) (*models.Team, error)

	// GetSchedule returns a team's games in the inclusive range. Zero
	// start and end default to the current calendar month; an end before
	// the start fails with an invalid-range error.
	GetSchedule(ctx context.Context, teamID int, start, end models.Date) (*models.Schedule, error)

	// GetGame returns a single game, with detailed stats populated when
	// the game is Final.
	GetGame(ctx context.Context, id int) (*models.Game, error)

	// ListGames returns the games for a calendar date ordered by provider
	// start time. A date with no games yields an empty slice, not an
	// error.
	ListGames(ctx context.Context, date models.Date) ([]models.Game, error)

	// Enrich attaches detailed stats to each Final game in games. When
	// detailed is false, games are returned unchanged. Per-game boxscore
	// fetches are independent and may run concurrently; results are
	// re-associated by game id, never by completion order.
	Enrich(ctx context.Context, games []models.Game, detailed bool) ([]models.Game, error)
}
