// Package mlbstats adapts the MLB Stats API schema onto the unified model.
package mlbstats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/XavierBriggs/Scoreline/pkg/contracts"
	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
)

// Adapter implements the LeagueAdapter contract for baseball.
type Adapter struct {
	client contracts.APIClient
	now    func() time.Time
}

var _ contracts.LeagueAdapter = (*Adapter)(nil)

// New creates a baseball adapter on top of an API client.
func New(client contracts.APIClient) *Adapter {
	return &Adapter{client: client, now: time.Now}
}

// League returns models.Baseball.
func (a *Adapter) League() models.League {
	return models.Baseball
}

// GetPlayer returns a player with their current-season batting and/or
// pitching stat bag.
func (a *Adapter) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	const op = "mlb: get player"

	query := url.Values{}
	query.Set("hydrate", "stats(group=[hitting,pitching],type=[season])")

	var resp peopleResponse
	if err := a.fetch(ctx, op, "/people/"+itoa(id), query, &resp); err != nil {
		return nil, err
	}
	if len(resp.People) == 0 {
		return nil, sporterr.Errorf(sporterr.KindNotFound, op, "no player with id %d", id)
	}

	return parsePlayer(op, &resp.People[0])
}

// GetTeam returns a team by id.
func (a *Adapter) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	const op = "mlb: get team"

	var resp teamsResponse
	if err := a.fetch(ctx, op, "/teams/"+itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Teams) == 0 {
		return nil, sporterr.Errorf(sporterr.KindNotFound, op, "no team with id %d", id)
	}

	return parseTeam(op, &resp.Teams[0])
}

// GetSchedule returns a team's games in the inclusive range, defaulting
// unset bounds to the current calendar month.
func (a *Adapter) GetSchedule(ctx context.Context, teamID int, start, end models.Date) (*models.Schedule, error) {
	const op = "mlb: get schedule"

	first, last := models.DateOf(a.now()).MonthRange()
	if start.IsZero() {
		start = first
	}
	if end.IsZero() {
		end = last
	}
	if end.Before(start) {
		return nil, sporterr.Errorf(sporterr.KindInvalidRange, op, "end date %s before start date %s", end, start)
	}

	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("teamId", itoa(teamID))
	query.Set("startDate", start.String())
	query.Set("endDate", end.String())

	var resp scheduleResponse
	if err := a.fetch(ctx, op, "/schedule", query, &resp); err != nil {
		return nil, err
	}

	games, err := parseScheduleGames(op, &resp)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Date != games[j].Date {
			return games[i].Date.Before(games[j].Date)
		}
		return games[i].ID < games[j].ID
	})

	return &models.Schedule{
		TeamID: teamID,
		League: models.Baseball,
		Start:  start,
		End:    end,
		Games:  games,
	}, nil
}

// GetGame returns a single game with detailed stats when it is Final.
func (a *Adapter) GetGame(ctx context.Context, id int) (*models.Game, error) {
	game, err := a.fetchGameMeta(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.IsFinal() {
		detail, err := a.fetchBoxscore(ctx, id)
		if err != nil {
			return nil, err
		}
		game.Detail = &models.DetailedStats{Baseball: detail}
	}
	return game, nil
}

// ListGames returns the games for a calendar date ordered by start time.
func (a *Adapter) ListGames(ctx context.Context, date models.Date) ([]models.Game, error) {
	const op = "mlb: list games"

	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("date", date.String())

	var resp scheduleResponse
	if err := a.fetch(ctx, op, "/schedule", query, &resp); err != nil {
		return nil, err
	}

	games, err := parseScheduleGames(op, &resp)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].StartTime.Equal(games[j].StartTime) {
			return games[i].StartTime.Before(games[j].StartTime)
		}
		return games[i].ID < games[j].ID
	})
	return games, nil
}

// Enrich attaches boxscore detail to each Final game. The per-game
// fetches run concurrently; each goroutine writes only its own slot, so
// results keep their listed order regardless of completion order.
func (a *Adapter) Enrich(ctx context.Context, games []models.Game, detailed bool) ([]models.Game, error) {
	if !detailed || len(games) == 0 {
		return games, nil
	}

	enriched := make([]models.Game, len(games))
	copy(enriched, games)
	errs := make([]error, len(games))

	var wg sync.WaitGroup
	for i := range enriched {
		if !enriched[i].IsFinal() {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			detail, err := a.fetchBoxscore(ctx, enriched[i].ID)
			if err != nil {
				errs[i] = err
				return
			}
			enriched[i].Detail = &models.DetailedStats{Baseball: detail}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return enriched, nil
}

// GetGameInnings returns the inning-by-inning line score for a game.
// This is a baseball-only extra beyond the LeagueAdapter contract.
func (a *Adapter) GetGameInnings(ctx context.Context, id int) (*models.GameInnings, error) {
	const op = "mlb: get game innings"

	game, err := a.fetchGameMeta(ctx, id)
	if err != nil {
		return nil, err
	}

	var resp linescoreResponse
	if err := a.fetch(ctx, op, "/game/"+itoa(id)+"/linescore", nil, &resp); err != nil {
		return nil, err
	}

	return parseInnings(op, game, &resp)
}

// fetchGameMeta loads a game's schedule entry without boxscore detail.
func (a *Adapter) fetchGameMeta(ctx context.Context, id int) (*models.Game, error) {
	const op = "mlb: get game"

	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("gamePk", itoa(id))

	var resp scheduleResponse
	if err := a.fetch(ctx, op, "/schedule", query, &resp); err != nil {
		return nil, err
	}

	games, err := parseScheduleGames(op, &resp)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, sporterr.Errorf(sporterr.KindNotFound, op, "no game with id %d", id)
	}
	return &games[0], nil
}

// fetchBoxscore loads and translates a Final game's boxscore.
func (a *Adapter) fetchBoxscore(ctx context.Context, id int) (*models.BaseballDetail, error) {
	const op = "mlb: get boxscore"

	var resp boxscoreResponse
	if err := a.fetch(ctx, op, "/game/"+itoa(id)+"/boxscore", nil, &resp); err != nil {
		return nil, err
	}
	return parseBoxscore(op, &resp)
}

// fetch performs a GET and maps transport and status failures onto the
// error taxonomy before decoding into out.
func (a *Adapter) fetch(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	body, status, err := a.client.Get(ctx, path, query)
	if err != nil {
		if ctx.Err() != nil {
			return sporterr.E(sporterr.KindCancelled, op, ctx.Err())
		}
		return sporterr.E(sporterr.KindUpstream, op, err)
	}
	switch {
	case status == http.StatusNotFound:
		return sporterr.Errorf(sporterr.KindNotFound, op, "HTTP %d", status)
	case status < 200 || status >= 300:
		return sporterr.Errorf(sporterr.KindUpstream, op, "HTTP %d", status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return sporterr.E(sporterr.KindParse, op, err)
	}
	return nil
}
