package mlbstats_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/XavierBriggs/Scoreline/adapters/mlbstats"
	"github.com/XavierBriggs/Scoreline/internal/httpclient"
	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
)

func newAdapter(t *testing.T, handler http.Handler) *mlbstats.Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return mlbstats.New(httpclient.New(server.URL, httpclient.WithRetries(1)))
}

const scheduleJSON = `{
  "dates": [{
    "date": "2025-04-12",
    "games": [
      {
        "gamePk": 745804,
        "gameDate": "2025-04-12T23:05:00Z",
        "status": {"abstractGameState": "Final"},
        "venue": {"name": "Yankee Stadium"},
        "teams": {
          "away": {"score": 2, "team": {"id": 111, "name": "Boston Red Sox"}},
          "home": {"score": 5, "team": {"id": 147, "name": "New York Yankees"}}
        }
      },
      {
        "gamePk": 745701,
        "gameDate": "2025-04-12T17:10:00Z",
        "status": {"abstractGameState": "Preview"},
        "teams": {
          "away": {"team": {"id": 114, "name": "Cleveland Guardians"}},
          "home": {"team": {"id": 116, "name": "Detroit Tigers"}}
        }
      }
    ]
  }]
}`

func TestGetTeam(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/141" {
			t.Errorf("path = %q, want /teams/141", r.URL.Path)
		}
		w.Write([]byte(`{"teams":[{
			"id": 141,
			"name": "Toronto Blue Jays",
			"abbreviation": "TOR",
			"locationName": "Toronto",
			"venue": {"name": "Rogers Centre"},
			"league": {"name": "American League"},
			"division": {"name": "American League East"}
		}]}`))
	}))

	team, err := adapter.GetTeam(context.Background(), 141)
	if err != nil {
		t.Fatalf("GetTeam() error = %v", err)
	}
	if team.ID != 141 || team.Name != "Toronto Blue Jays" {
		t.Errorf("team = %+v", team)
	}
	if team.League != models.Baseball {
		t.Errorf("league = %s, want baseball", team.League)
	}
	if team.Venue != "Rogers Centre" || team.Division != "American League East" {
		t.Errorf("venue/division = %q/%q", team.Venue, team.Division)
	}
}

func TestGetTeamNotFound(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := adapter.GetTeam(context.Background(), 999)
	if got := sporterr.KindOf(err); got != sporterr.KindNotFound {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindNotFound, err)
	}
}

func TestGetTeamEmptyResult(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"teams":[]}`))
	}))

	_, err := adapter.GetTeam(context.Background(), 999)
	if got := sporterr.KindOf(err); got != sporterr.KindNotFound {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindNotFound, err)
	}
}

func TestGetTeamMalformedBody(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))

	_, err := adapter.GetTeam(context.Background(), 141)
	if got := sporterr.KindOf(err); got != sporterr.KindParse {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindParse, err)
	}
}

func TestGetTeamUpstreamError(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := adapter.GetTeam(context.Background(), 141)
	if got := sporterr.KindOf(err); got != sporterr.KindUpstream {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindUpstream, err)
	}
}

func TestListGamesSortedAndMapped(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2025-04-12" {
			t.Errorf("date = %q, want 2025-04-12", got)
		}
		w.Write([]byte(scheduleJSON))
	}))

	games, err := adapter.ListGames(context.Background(), models.Date{Year: 2025, Month: time.April, Day: 12})
	if err != nil {
		t.Fatalf("ListGames() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}

	// The afternoon game starts first even though the feed lists it second.
	if games[0].ID != 745701 || games[1].ID != 745804 {
		t.Errorf("order = [%d, %d], want [745701, 745804]", games[0].ID, games[1].ID)
	}
	if games[0].Status != models.StatusScheduled {
		t.Errorf("Preview should map to Scheduled, got %s", games[0].Status)
	}
	if games[1].Status != models.StatusFinal {
		t.Errorf("Final should map to Final, got %s", games[1].Status)
	}
	if games[1].AwayScore != 2 || games[1].HomeScore != 5 {
		t.Errorf("scores = %d-%d, want 2-5", games[1].AwayScore, games[1].HomeScore)
	}
	if games[1].Venue != "Yankee Stadium" {
		t.Errorf("venue = %q", games[1].Venue)
	}
}

func TestListGamesUnknownState(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dates":[{"games":[{
			"gamePk": 1,
			"gameDate": "2025-04-12T17:10:00Z",
			"status": {"abstractGameState": "Suspended"},
			"teams": {
				"away": {"team": {"id": 1, "name": "A"}},
				"home": {"team": {"id": 2, "name": "B"}}
			}
		}]}]}`))
	}))

	_, err := adapter.ListGames(context.Background(), models.Date{Year: 2025, Month: time.April, Day: 12})
	if got := sporterr.KindOf(err); got != sporterr.KindParse {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindParse, err)
	}
}

func TestListGamesMissingRequiredField(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// gamePk absent entirely.
		w.Write([]byte(`{"dates":[{"games":[{
			"gameDate": "2025-04-12T17:10:00Z",
			"status": {"abstractGameState": "Preview"},
			"teams": {
				"away": {"team": {"id": 1, "name": "A"}},
				"home": {"team": {"id": 2, "name": "B"}}
			}
		}]}]}`))
	}))

	_, err := adapter.ListGames(context.Background(), models.Date{Year: 2025, Month: time.April, Day: 12})
	if got := sporterr.KindOf(err); got != sporterr.KindParse {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindParse, err)
	}
}

func TestGetScheduleInvalidRange(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an invalid range")
	}))

	start := models.Date{Year: 2025, Month: time.April, Day: 20}
	end := models.Date{Year: 2025, Month: time.April, Day: 10}
	_, err := adapter.GetSchedule(context.Background(), 141, start, end)
	if got := sporterr.KindOf(err); got != sporterr.KindInvalidRange {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindInvalidRange, err)
	}
}

func TestGetScheduleDefaultsToCurrentMonth(t *testing.T) {
	wantFirst, wantLast := models.DateOf(time.Now()).MonthRange()

	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("startDate"); got != wantFirst.String() {
			t.Errorf("startDate = %q, want %q", got, wantFirst)
		}
		if got := r.URL.Query().Get("endDate"); got != wantLast.String() {
			t.Errorf("endDate = %q, want %q", got, wantLast)
		}
		if got := r.URL.Query().Get("teamId"); got != "141" {
			t.Errorf("teamId = %q, want 141", got)
		}
		w.Write([]byte(`{"dates":[]}`))
	}))

	sched, err := adapter.GetSchedule(context.Background(), 141, models.Date{}, models.Date{})
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}
	if sched.Start != wantFirst || sched.End != wantLast {
		t.Errorf("range = %v to %v, want %v to %v", sched.Start, sched.End, wantFirst, wantLast)
	}
	if len(sched.Games) != 0 {
		t.Errorf("got %d games, want 0", len(sched.Games))
	}
}

func TestGetGameFinalFetchesBoxscore(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schedule":
			if got := r.URL.Query().Get("gamePk"); got != "745804" {
				t.Errorf("gamePk = %q, want 745804", got)
			}
			w.Write([]byte(scheduleJSON))
		case "/game/745804/boxscore":
			w.Write([]byte(`{"teams":{
				"away": {
					"team": {"id": 111, "name": "Boston Red Sox"},
					"teamStats": {
						"batting": {"atBats": 31, "hits": 6, "runs": 2, "homeRuns": 1, "rbi": 2},
						"pitching": {"inningsPitched": "8.0", "hits": 10, "runs": 5, "earnedRuns": 5, "strikeOuts": 6}
					},
					"batters": [101, 102],
					"pitchers": [201],
					"players": {
						"ID101": {"person": {"id": 101, "fullName": "Rafael Devers"}, "stats": {"batting": {"atBats": 4, "hits": 2, "runs": 1, "homeRuns": 1, "rbi": 2}}},
						"ID102": {"person": {"id": 102, "fullName": "Trevor Story"}, "stats": {"batting": {"atBats": 4, "hits": 1}}},
						"ID201": {"person": {"id": 201, "fullName": "Brayan Bello"}, "stats": {"pitching": {"inningsPitched": "6.2", "hits": 8, "runs": 4, "earnedRuns": 4, "strikeOuts": 5}}}
					}
				},
				"home": {
					"team": {"id": 147, "name": "New York Yankees"},
					"teamStats": {
						"batting": {"atBats": 33, "hits": 10, "runs": 5, "homeRuns": 2, "rbi": 5},
						"pitching": {"inningsPitched": "9.0", "hits": 6, "runs": 2, "earnedRuns": 2, "strikeOuts": 9}
					},
					"batters": [],
					"pitchers": [],
					"players": {}
				}
			}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	game, err := adapter.GetGame(context.Background(), 745804)
	if err != nil {
		t.Fatalf("GetGame() error = %v", err)
	}
	if game.ID != 745804 || !game.IsFinal() {
		t.Fatalf("game = %+v", game)
	}
	if game.Detail == nil || game.Detail.Baseball == nil {
		t.Fatal("final game should carry baseball detail")
	}

	away := game.Detail.Baseball.Away
	if away.TeamName != "Boston Red Sox" {
		t.Errorf("away team = %q", away.TeamName)
	}
	if away.Batting.Hits != 6 || away.Pitching.Strikeouts != 6 {
		t.Errorf("away team stats = %+v", away)
	}
	if len(away.Batters) != 2 || len(away.Pitchers) != 1 {
		t.Fatalf("away roster = %d batters, %d pitchers", len(away.Batters), len(away.Pitchers))
	}
	if len(away.TopBatters) != 2 || away.TopBatters[0].Name != "Rafael Devers" {
		t.Errorf("top batters = %+v", away.TopBatters)
	}
	if away.Pitchers[0].Pitching.InningsPitched != (models.InningsPitched{Complete: 6, Thirds: 2}) {
		t.Errorf("innings pitched = %v, want 6.2", away.Pitchers[0].Pitching.InningsPitched)
	}
}

func TestGetGameScheduledSkipsBoxscore(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Errorf("unexpected fetch of %q for a scheduled game", r.URL.Path)
		}
		w.Write([]byte(`{"dates":[{"games":[{
			"gamePk": 745701,
			"gameDate": "2025-04-12T17:10:00Z",
			"status": {"abstractGameState": "Preview"},
			"teams": {
				"away": {"team": {"id": 114, "name": "Cleveland Guardians"}},
				"home": {"team": {"id": 116, "name": "Detroit Tigers"}}
			}
		}]}]}`))
	}))

	game, err := adapter.GetGame(context.Background(), 745701)
	if err != nil {
		t.Fatalf("GetGame() error = %v", err)
	}
	if game.Detail != nil {
		t.Error("scheduled game must not carry detail")
	}
}

func TestGetGameNotFound(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dates":[]}`))
	}))

	_, err := adapter.GetGame(context.Background(), 1)
	if got := sporterr.KindOf(err); got != sporterr.KindNotFound {
		t.Errorf("error kind = %q, want %q (err: %v)", got, sporterr.KindNotFound, err)
	}
}

func TestGetPlayerWithSeasonStats(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people/660271" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"people":[{
			"id": 660271,
			"fullName": "Shohei Ohtani",
			"primaryNumber": "17",
			"primaryPosition": {"name": "Designated Hitter", "abbreviation": "DH"},
			"batSide": {"code": "L", "description": "Left"},
			"pitchHand": {"code": "R", "description": "Right"},
			"stats": [
				{"group": {"displayName": "hitting"}, "splits": [{"stat": {"atBats": 497, "hits": 151, "runs": 102, "homeRuns": 44, "rbi": 95, "stolenBases": 20, "baseOnBalls": 81, "strikeOuts": 143}}]},
				{"group": {"displayName": "pitching"}, "splits": [{"stat": {"inningsPitched": "132.0", "hits": 85, "runs": 45, "earnedRuns": 43, "baseOnBalls": 55, "strikeOuts": 167, "homeRuns": 18}}]}
			]
		}]}`))
	}))

	player, err := adapter.GetPlayer(context.Background(), 660271)
	if err != nil {
		t.Fatalf("GetPlayer() error = %v", err)
	}
	if player.Name != "Shohei Ohtani" || player.Number != "17" || player.Position != "DH" {
		t.Errorf("player = %+v", player)
	}
	if player.Bats != "Left" || player.Throws != "Right" {
		t.Errorf("bats/throws = %q/%q", player.Bats, player.Throws)
	}
	if player.Season == nil || player.Season.Batting == nil || player.Season.Pitching == nil {
		t.Fatal("two-way player should carry both stat bags")
	}
	if player.Season.Batting.HomeRuns != 44 {
		t.Errorf("home runs = %d, want 44", player.Season.Batting.HomeRuns)
	}
	if player.Season.Pitching.InningsPitched != (models.InningsPitched{Complete: 132}) {
		t.Errorf("innings pitched = %v, want 132.0", player.Season.Pitching.InningsPitched)
	}
}

func TestGetPlayerNoStats(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"people":[{"id": 1, "fullName": "September Callup"}]}`))
	}))

	player, err := adapter.GetPlayer(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPlayer() error = %v", err)
	}
	if player.Season != nil {
		t.Error("a player with no splits should carry no stat bag")
	}
}

func TestGetGameInnings(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schedule":
			w.Write([]byte(scheduleJSON))
		case "/game/745804/linescore":
			w.Write([]byte(`{
				"innings": [
					{"num": 1, "away": {"runs": 0}, "home": {"runs": 2}},
					{"num": 2, "away": {"runs": 1}, "home": {"runs": 0}},
					{"num": 3, "away": {"runs": 0}, "home": {}}
				],
				"teams": {"away": {"runs": 1}, "home": {"runs": 2}}
			}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	gi, err := adapter.GetGameInnings(context.Background(), 745804)
	if err != nil {
		t.Fatalf("GetGameInnings() error = %v", err)
	}
	if len(gi.Innings) != 3 {
		t.Fatalf("got %d innings, want 3", len(gi.Innings))
	}
	if gi.Innings[0].Home == nil || *gi.Innings[0].Home != 2 {
		t.Errorf("first inning home runs = %v, want 2", gi.Innings[0].Home)
	}
	if gi.Innings[2].Home != nil {
		t.Error("an unplayed half inning should be nil, not zero")
	}
	if gi.AwayRuns != 1 || gi.HomeRuns != 2 {
		t.Errorf("totals = %d-%d, want 1-2", gi.AwayRuns, gi.HomeRuns)
	}
}

func TestEnrichKeepsListedOrder(t *testing.T) {
	boxscore := func(name string) string {
		return `{"teams":{
			"away": {"team": {"id": 1, "name": "` + name + ` Away"}, "teamStats": {"batting": {}, "pitching": {"inningsPitched": "9.0"}}, "batters": [], "pitchers": [], "players": {}},
			"home": {"team": {"id": 2, "name": "` + name + ` Home"}, "teamStats": {"batting": {}, "pitching": {"inningsPitched": "9.0"}}, "batters": [], "pitchers": [], "players": {}}
		}}`
	}
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/game/10/boxscore":
			// Delay the first game so the second completes before it.
			time.Sleep(30 * time.Millisecond)
			w.Write([]byte(boxscore("First")))
		case "/game/20/boxscore":
			w.Write([]byte(boxscore("Second")))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	date := models.Date{Year: 2025, Month: time.April, Day: 12}
	games := []models.Game{
		{ID: 10, League: models.Baseball, Date: date, Status: models.StatusFinal},
		{ID: 20, League: models.Baseball, Date: date, Status: models.StatusFinal},
	}

	enriched, err := adapter.Enrich(context.Background(), games, true)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if enriched[0].Detail.Baseball.Away.TeamName != "First Away" {
		t.Errorf("game 10 detail = %q, enrichment crossed game boundaries",
			enriched[0].Detail.Baseball.Away.TeamName)
	}
	if enriched[1].Detail.Baseball.Away.TeamName != "Second Away" {
		t.Errorf("game 20 detail = %q", enriched[1].Detail.Baseball.Away.TeamName)
	}
}

func TestEnrichSkipsNonFinal(t *testing.T) {
	adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no boxscore should be fetched for non-final games (%s)", r.URL.Path)
	}))

	games := []models.Game{{ID: 1, Status: models.StatusScheduled}, {ID: 2, Status: models.StatusLive}}
	enriched, err := adapter.Enrich(context.Background(), games, true)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	for i := range enriched {
		if enriched[i].Detail != nil {
			t.Errorf("game %d gained detail without being final", enriched[i].ID)
		}
	}
}
