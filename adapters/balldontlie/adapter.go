// Package balldontlie adapts the balldontlie NBA API schema onto the
// unified model. Unlike the baseball provider it requires an API key and
// enforces request quotas (HTTP 429).
package balldontlie

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/XavierBriggs/Scoreline/internal/stats"
	"github.com/XavierBriggs/Scoreline/pkg/contracts"
	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
)

const pageSize = "100"

// Adapter implements the LeagueAdapter contract for basketball.
type Adapter struct {
	client contracts.APIClient
	apiKey string
	now    func() time.Time
}

var _ contracts.LeagueAdapter = (*Adapter)(nil)

// New creates a basketball adapter. An empty apiKey is allowed here so a
// combined query can still serve the other league; every operation checks
// the key and fails fast with a config error before any network call.
func New(client contracts.APIClient, apiKey string) *Adapter {
	return &Adapter{client: client, apiKey: apiKey, now: time.Now}
}

// League returns models.Basketball.
func (a *Adapter) League() models.League {
	return models.Basketball
}

// GetPlayer returns a player with their season-averages stat bag.
func (a *Adapter) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	const op = "nba: get player"
	if err := a.requireKey(op); err != nil {
		return nil, err
	}

	var resp singlePlayerResponse
	if err := a.fetch(ctx, op, "/players/"+itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, sporterr.Errorf(sporterr.KindNotFound, op, "no player with id %d", id)
	}
	player, err := parsePlayer(op, resp.Data)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("player_ids[]", itoa(id))
	var averages seasonAveragesResponse
	if err := a.fetch(ctx, op, "/season_averages", query, &averages); err != nil {
		return nil, err
	}
	if len(averages.Data) > 0 {
		season, err := parseSeasonAverages(op, &averages.Data[0])
		if err != nil {
			return nil, err
		}
		player.Season = &models.SeasonStats{Basketball: season}
	}
	return player, nil
}

// GetTeam returns a team by id.
func (a *Adapter) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	const op = "nba: get team"
	if err := a.requireKey(op); err != nil {
		return nil, err
	}

	var resp singleTeamResponse
	if err := a.fetch(ctx, op, "/teams/"+itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, sporterr.Errorf(sporterr.KindNotFound, op, "no team with id %d", id)
	}
	return parseTeam(op, resp.Data)
}

// GetSchedule returns a team's games in the inclusive range, defaulting
// unset bounds to the current calendar month.
func (a *Adapter) GetSchedule(ctx context.Context, teamID int, start, end models.Date) (*models.Schedule, error) {
	const op = "nba: get schedule"
	if err := a.requireKey(op); err != nil {
		return nil, err
	}

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
	query.Set("team_ids[]", itoa(teamID))
	query.Set("start_date", start.String())
	query.Set("end_date", end.String())

	games, err := a.fetchGames(ctx, op, query)
	if err != nil {
		return nil, err
	}
	return &models.Schedule{
		TeamID: teamID,
		League: models.Basketball,
		Start:  start,
		End:    end,
		Games:  games,
	}, nil
}

// GetGame returns a single game, with per-player detail when Final.
func (a *Adapter) GetGame(ctx context.Context, id int) (*models.Game, error) {
	const op = "nba: get game"
	if err := a.requireKey(op); err != nil {
		return nil, err
	}

	var resp singleGameResponse
	if err := a.fetch(ctx, op, "/games/"+itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, sporterr.Errorf(sporterr.KindNotFound, op, "no game with id %d", id)
	}
	game, err := parseGame(op, resp.Data)
	if err != nil {
		return nil, err
	}
	if game.IsFinal() {
		detail, err := a.fetchGameDetail(ctx, game)
		if err != nil {
			return nil, err
		}
		game.Detail = &models.DetailedStats{Basketball: detail}
	}
	return game, nil
}

// ListGames returns the games for a calendar date.
func (a *Adapter) ListGames(ctx context.Context, date models.Date) ([]models.Game, error) {
	const op = "nba: list games"
	if err := a.requireKey(op); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("dates[]", date.String())
	return a.fetchGames(ctx, op, query)
}

// Enrich attaches per-player boxscores to each Final game. Fetches run
// concurrently; each goroutine writes only its own slot, so results are
// re-associated by game, never by completion order.
func (a *Adapter) Enrich(ctx context.Context, games []models.Game, detailed bool) ([]models.Game, error) {
	if !detailed || len(games) == 0 {
		return games, nil
	}
	if err := a.requireKey("nba: enrich games"); err != nil {
		return nil, err
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
			detail, err := a.fetchGameDetail(ctx, &enriched[i])
			if err != nil {
				errs[i] = err
				return
			}
			enriched[i].Detail = &models.DetailedStats{Basketball: detail}
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

// fetchGameDetail loads the per-player stat lines for one game and splits
// them into away and home groups ordered by points.
func (a *Adapter) fetchGameDetail(ctx context.Context, game *models.Game) (*models.BasketballDetail, error) {
	const op = "nba: get game stats"

	query := url.Values{}
	query.Set("game_ids[]", itoa(game.ID))
	query.Set("per_page", pageSize)

	var lines []playerStatLine
	cursor := 0
	for {
		if cursor > 0 {
			query.Set("cursor", itoa(cursor))
		}
		var resp statsResponse
		if err := a.fetch(ctx, op, "/stats", query, &resp); err != nil {
			return nil, err
		}
		lines = append(lines, resp.Data...)
		if resp.Meta == nil || resp.Meta.NextCursor == nil {
			break
		}
		cursor = *resp.Meta.NextCursor
	}

	detail := &models.BasketballDetail{
		AwayTeamName: game.AwayTeam.Name,
		HomeTeamName: game.HomeTeam.Name,
	}
	for i := range lines {
		player, teamID, err := parsePlayerStatLine(op, &lines[i])
		if err != nil {
			return nil, err
		}
		switch teamID {
		case game.AwayTeam.ID:
			detail.AwayPlayers = append(detail.AwayPlayers, *player)
		case game.HomeTeam.ID:
			detail.HomePlayers = append(detail.HomePlayers, *player)
		}
	}
	detail.AwayPlayers = stats.SortBoxPlayers(detail.AwayPlayers)
	detail.HomePlayers = stats.SortBoxPlayers(detail.HomePlayers)
	return detail, nil
}

// fetchGames pages through /games with the given filter and returns the
// games sorted by date then id.
func (a *Adapter) fetchGames(ctx context.Context, op string, query url.Values) ([]models.Game, error) {
	query.Set("per_page", pageSize)

	games := []models.Game{}
	cursor := 0
	for {
		if cursor > 0 {
			query.Set("cursor", itoa(cursor))
		}
		var resp gamesResponse
		if err := a.fetch(ctx, op, "/games", query, &resp); err != nil {
			return nil, err
		}
		for i := range resp.Data {
			game, err := parseGame(op, &resp.Data[i])
			if err != nil {
				return nil, err
			}
			games = append(games, *game)
		}
		if resp.Meta == nil || resp.Meta.NextCursor == nil {
			break
		}
		cursor = *resp.Meta.NextCursor
	}

	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Date != games[j].Date {
			return games[i].Date.Before(games[j].Date)
		}
		return games[i].ID < games[j].ID
	})
	return games, nil
}

// requireKey fails fast with a config error before any network call.
func (a *Adapter) requireKey(op string) error {
	if a.apiKey == "" {
		return sporterr.Errorf(sporterr.KindConfig, op, "NBA API key is required; set NBA_API_KEY")
	}
	return nil
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
	case status == http.StatusTooManyRequests:
		return sporterr.Errorf(sporterr.KindRateLimited, op, "HTTP %d", status)
	case status < 200 || status >= 300:
		return sporterr.Errorf(sporterr.KindUpstream, op, "HTTP %d", status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return sporterr.E(sporterr.KindParse, op, err)
	}
	return nil
}
