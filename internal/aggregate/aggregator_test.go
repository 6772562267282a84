package aggregate_test

import (
	"context"
	"testing"
	"time"

	"github.com/XavierBriggs/Scoreline/internal/aggregate"
	"github.com/XavierBriggs/Scoreline/internal/registry"
	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
	"github.com/XavierBriggs/Scoreline/pkg/testutil"
)

func newRegistry(t *testing.T, adapters ...*testutil.MockLeagueAdapter) *registry.LeagueRegistry {
	t.Helper()
	reg := registry.NewLeagueRegistry()
	for _, adapter := range adapters {
		if err := reg.Register(adapter); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

func listOne(game models.Game) func(context.Context, models.Date) ([]models.Game, error) {
	return func(ctx context.Context, date models.Date) ([]models.Game, error) {
		return []models.Game{game}, nil
	}
}

func TestGetGamesForDateMergesBothLeagues(t *testing.T) {
	date := models.Date{Year: 2025, Month: time.April, Day: 12}
	mlb := &testutil.MockLeagueAdapter{
		LeagueValue:   models.Baseball,
		ListGamesFunc: listOne(testutil.NewTestGame(1, models.Baseball, date, "Guardians", "Tigers", 2, 1)),
	}
	nba := &testutil.MockLeagueAdapter{
		LeagueValue:   models.Basketball,
		ListGamesFunc: listOne(testutil.NewTestGame(2, models.Basketball, date, "Kings", "Suns", 112, 108)),
	}

	agg := aggregate.New(newRegistry(t, mlb, nba))
	report, err := agg.GetGamesForDate(context.Background(), aggregate.Today, aggregate.FilterAll, false)
	if err != nil {
		t.Fatalf("GetGamesForDate() error = %v", err)
	}

	if len(report.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(report.Sections))
	}
	if report.Sections[0].League != models.Baseball || report.Sections[1].League != models.Basketball {
		t.Errorf("section order = [%s, %s], want [baseball, basketball]",
			report.Sections[0].League, report.Sections[1].League)
	}
	if len(report.Sections[0].Games) != 1 || len(report.Sections[1].Games) != 1 {
		t.Errorf("each section should carry its league's games")
	}
}

func TestGetGamesForDateOrderIndependentOfCompletion(t *testing.T) {
	date := models.Date{Year: 2025, Month: time.April, Day: 12}

	// The baseball fetch finishes last; its section must still come first.
	mlb := &testutil.MockLeagueAdapter{
		LeagueValue: models.Baseball,
		ListGamesFunc: func(ctx context.Context, d models.Date) ([]models.Game, error) {
			time.Sleep(30 * time.Millisecond)
			return []models.Game{testutil.NewTestGame(1, models.Baseball, date, "Guardians", "Tigers", 2, 1)}, nil
		},
	}
	nba := &testutil.MockLeagueAdapter{
		LeagueValue:   models.Basketball,
		ListGamesFunc: listOne(testutil.NewTestGame(2, models.Basketball, date, "Kings", "Suns", 112, 108)),
	}

	agg := aggregate.New(newRegistry(t, mlb, nba))
	report, err := agg.GetGamesForDate(context.Background(), aggregate.Today, aggregate.FilterAll, false)
	if err != nil {
		t.Fatalf("GetGamesForDate() error = %v", err)
	}
	if report.Sections[0].League != models.Baseball {
		t.Errorf("first section = %s, want baseball regardless of completion order", report.Sections[0].League)
	}
	if report.Sections[0].Games[0].AwayTeam.Name != "Guardians" {
		t.Error("baseball games landed in the wrong section")
	}
}

func TestGetGamesForDatePartialFailure(t *testing.T) {
	date := models.Date{Year: 2025, Month: time.April, Day: 12}
	mlb := &testutil.MockLeagueAdapter{
		LeagueValue:   models.Baseball,
		ListGamesFunc: listOne(testutil.NewTestGame(1, models.Baseball, date, "Guardians", "Tigers", 2, 1)),
	}
	nba := &testutil.MockLeagueAdapter{
		LeagueValue: models.Basketball,
		ListGamesFunc: func(ctx context.Context, d models.Date) ([]models.Game, error) {
			return nil, sporterr.Errorf(sporterr.KindConfig, "nba: list games", "NBA API key is required")
		},
	}

	agg := aggregate.New(newRegistry(t, mlb, nba))
	report, err := agg.GetGamesForDate(context.Background(), aggregate.Today, aggregate.FilterAll, false)
	if err != nil {
		t.Fatalf("one healthy league should not fail the call, got %v", err)
	}

	if len(report.Sections[0].Games) != 1 {
		t.Error("healthy baseball section lost its games")
	}
	failed := report.Sections[1]
	if failed.Err == nil {
		t.Fatal("failed basketball section should carry its error")
	}
	if got := sporterr.KindOf(failed.Err); got != sporterr.KindConfig {
		t.Errorf("section error kind = %q, want %q", got, sporterr.KindConfig)
	}
	if len(failed.Games) != 0 {
		t.Error("failed section must not carry games")
	}
}

func TestGetGamesForDateAllFail(t *testing.T) {
	failing := func(op string) func(context.Context, models.Date) ([]models.Game, error) {
		return func(ctx context.Context, d models.Date) ([]models.Game, error) {
			return nil, sporterr.Errorf(sporterr.KindUpstream, op, "HTTP 503")
		}
	}
	mlb := &testutil.MockLeagueAdapter{LeagueValue: models.Baseball, ListGamesFunc: failing("mlb: list games")}
	nba := &testutil.MockLeagueAdapter{LeagueValue: models.Basketball, ListGamesFunc: failing("nba: list games")}

	agg := aggregate.New(newRegistry(t, mlb, nba))
	report, err := agg.GetGamesForDate(context.Background(), aggregate.Today, aggregate.FilterAll, false)
	if err == nil {
		t.Fatal("every league failing should fail the call")
	}
	if report != nil {
		t.Error("no report should accompany a total failure")
	}
	if got := sporterr.KindOf(err); got != sporterr.KindAggregate {
		t.Errorf("error kind = %q, want %q", got, sporterr.KindAggregate)
	}
}

func TestGetGamesForDateLeagueFilter(t *testing.T) {
	date := models.Date{Year: 2025, Month: time.April, Day: 12}
	mlb := &testutil.MockLeagueAdapter{
		LeagueValue:   models.Baseball,
		ListGamesFunc: listOne(testutil.NewTestGame(1, models.Baseball, date, "Guardians", "Tigers", 2, 1)),
	}
	nba := &testutil.MockLeagueAdapter{
		LeagueValue: models.Basketball,
		ListGamesFunc: func(ctx context.Context, d models.Date) ([]models.Game, error) {
			t.Error("basketball adapter must not be called under the mlb filter")
			return nil, nil
		},
	}

	agg := aggregate.New(newRegistry(t, mlb, nba))
	report, err := agg.GetGamesForDate(context.Background(), aggregate.Today, aggregate.FilterBaseball, false)
	if err != nil {
		t.Fatalf("GetGamesForDate() error = %v", err)
	}
	if len(report.Sections) != 1 || report.Sections[0].League != models.Baseball {
		t.Errorf("filtered report should hold only the baseball section")
	}
}

func TestGetGamesForDateNoAdapterForFilter(t *testing.T) {
	mlb := &testutil.MockLeagueAdapter{LeagueValue: models.Baseball}
	agg := aggregate.New(newRegistry(t, mlb))

	_, err := agg.GetGamesForDate(context.Background(), aggregate.Today, aggregate.FilterBasketball, false)
	if err == nil {
		t.Fatal("filtering to an unregistered league should fail")
	}
	if got := sporterr.KindOf(err); got != sporterr.KindConfig {
		t.Errorf("error kind = %q, want %q", got, sporterr.KindConfig)
	}
}

func TestGetGamesForDateEnrichesWhenDetailed(t *testing.T) {
	date := models.Date{Year: 2025, Month: time.April, Day: 12}
	enriched := false
	mlb := &testutil.MockLeagueAdapter{
		LeagueValue:   models.Baseball,
		ListGamesFunc: listOne(testutil.NewTestGame(1, models.Baseball, date, "Guardians", "Tigers", 2, 1)),
		EnrichFunc: func(ctx context.Context, games []models.Game, detailed bool) ([]models.Game, error) {
			enriched = detailed
			return games, nil
		},
	}

	agg := aggregate.New(newRegistry(t, mlb))
	if _, err := agg.GetGamesForDate(context.Background(), aggregate.Today, aggregate.FilterBaseball, true); err != nil {
		t.Fatalf("GetGamesForDate() error = %v", err)
	}
	if !enriched {
		t.Error("detailed queries must run the enrichment step")
	}
}

func TestGetGamesForDateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mlb := &testutil.MockLeagueAdapter{
		LeagueValue: models.Baseball,
		ListGamesFunc: func(ctx context.Context, d models.Date) ([]models.Game, error) {
			return nil, sporterr.E(sporterr.KindCancelled, "mlb: list games", ctx.Err())
		},
	}

	agg := aggregate.New(newRegistry(t, mlb))
	report, err := agg.GetGamesForDate(ctx, aggregate.Today, aggregate.FilterBaseball, false)
	if err == nil {
		t.Fatal("a cancelled context should fail the call")
	}
	if report != nil {
		t.Error("no partial report should survive cancellation")
	}
	if got := sporterr.KindOf(err); got != sporterr.KindCancelled {
		t.Errorf("error kind = %q, want %q", got, sporterr.KindCancelled)
	}
}

func TestGetGamesForDateYesterday(t *testing.T) {
	var got models.Date
	mlb := &testutil.MockLeagueAdapter{
		LeagueValue: models.Baseball,
		ListGamesFunc: func(ctx context.Context, d models.Date) ([]models.Game, error) {
			got = d
			return nil, nil
		},
	}

	agg := aggregate.New(newRegistry(t, mlb))
	before := models.DateOf(time.Now()).AddDays(-1)
	report, err := agg.GetGamesForDate(context.Background(), aggregate.Yesterday, aggregate.FilterBaseball, false)
	if err != nil {
		t.Fatalf("GetGamesForDate() error = %v", err)
	}
	after := models.DateOf(time.Now()).AddDays(-1)

	if got != before && got != after {
		t.Errorf("adapter saw date %v, want yesterday (%v)", got, before)
	}
	if report.Date != got {
		t.Errorf("report date %v differs from the date the adapter saw (%v)", report.Date, got)
	}
}
