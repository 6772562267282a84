package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/XavierBriggs/Scoreline/adapters/balldontlie"
	"github.com/XavierBriggs/Scoreline/adapters/mlbstats"
	"github.com/XavierBriggs/Scoreline/internal/aggregate"
	"github.com/XavierBriggs/Scoreline/internal/config"
	"github.com/XavierBriggs/Scoreline/internal/httpclient"
	"github.com/XavierBriggs/Scoreline/internal/registry"
	"github.com/XavierBriggs/Scoreline/internal/report"
	"github.com/XavierBriggs/Scoreline/pkg/contracts"
	"github.com/XavierBriggs/Scoreline/pkg/models"
)

const version = "1.0.0"

func main() {
	var (
		playerID       = flag.Int("player-id", 0, "show a player's profile and season stats")
		teamID         = flag.Int("team-id", 0, "show a team's profile")
		gameID         = flag.Int("game-id", 0, "show a single game")
		schedule       = flag.Bool("schedule", false, "show a team's schedule (requires -team-id)")
		startDate      = flag.String("start-date", "", "schedule range start, YYYY-MM-DD (default: first of this month)")
		endDate        = flag.String("end-date", "", "schedule range end, YYYY-MM-DD (default: last of this month)")
		todaysGames    = flag.Bool("todays-games", false, "show today's games across leagues")
		yesterdayGames = flag.Bool("yesterdays-games", false, "show yesterday's games across leagues")
		leagueName     = flag.String("league", "all", "league to query: all, mlb or nba")
		detailed       = flag.Bool("detailed", false, "include per-player boxscores for final games")
		innings        = flag.Bool("innings", false, "show the inning-by-inning line score (with -game-id, MLB only)")
		configPath     = flag.String("config", "", "path to a YAML config file")
		showVersion    = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("scoreline %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	filter, err := parseLeagueFilter(*leagueName)
	if err != nil {
		fatal(err)
	}

	// Cancel in-flight requests on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mlbAdapter := mlbstats.New(httpclient.New(cfg.MLBBaseURL, httpclient.WithTimeout(cfg.HTTPTimeout)))

	nbaOpts := []httpclient.Option{httpclient.WithTimeout(cfg.HTTPTimeout)}
	if cfg.NBAAPIKey != "" {
		nbaOpts = append(nbaOpts, httpclient.WithHeader("Authorization", cfg.NBAAPIKey))
	}
	nbaAdapter := balldontlie.New(httpclient.New(cfg.NBABaseURL, nbaOpts...), cfg.NBAAPIKey)

	leagues := registry.NewLeagueRegistry()
	if err := leagues.Register(mlbAdapter); err != nil {
		fatal(err)
	}
	if err := leagues.Register(nbaAdapter); err != nil {
		fatal(err)
	}
	aggregator := aggregate.New(leagues)

	switch {
	case *todaysGames || *yesterdayGames:
		day := aggregate.Today
		if *yesterdayGames {
			day = aggregate.Yesterday
		}
		combined, err := aggregator.GetGamesForDate(ctx, day, filter, *detailed)
		if err != nil {
			fatal(err)
		}
		fmt.Print(report.RenderCombined(combined))

	case *innings:
		if *gameID == 0 {
			fatal(fmt.Errorf("-innings requires -game-id"))
		}
		gi, err := mlbAdapter.GetGameInnings(ctx, *gameID)
		if err != nil {
			fatal(err)
		}
		fmt.Print(report.RenderInnings(gi))

	case *gameID != 0:
		adapter, err := singleLeague(leagues, filter)
		if err != nil {
			fatal(err)
		}
		game, err := adapter.GetGame(ctx, *gameID)
		if err != nil {
			fatal(err)
		}
		fmt.Print(report.RenderGame(game, *detailed))

	case *schedule:
		if *teamID == 0 {
			fatal(fmt.Errorf("-schedule requires -team-id"))
		}
		adapter, err := singleLeague(leagues, filter)
		if err != nil {
			fatal(err)
		}
		start, end, err := parseRange(*startDate, *endDate)
		if err != nil {
			fatal(err)
		}
		sched, err := adapter.GetSchedule(ctx, *teamID, start, end)
		if err != nil {
			fatal(err)
		}
		fmt.Print(report.RenderSchedule(sched))

	case *teamID != 0:
		adapter, err := singleLeague(leagues, filter)
		if err != nil {
			fatal(err)
		}
		team, err := adapter.GetTeam(ctx, *teamID)
		if err != nil {
			fatal(err)
		}
		fmt.Print(report.RenderTeam(team))

	case *playerID != 0:
		adapter, err := singleLeague(leagues, filter)
		if err != nil {
			fatal(err)
		}
		player, err := adapter.GetPlayer(ctx, *playerID)
		if err != nil {
			fatal(err)
		}
		fmt.Print(report.RenderPlayer(player))

	default:
		usage()
	}
}

// singleLeague resolves the -league flag for commands that target one
// provider. "all" is ambiguous here and rejected.
func singleLeague(leagues *registry.LeagueRegistry, filter aggregate.LeagueFilter) (contracts.LeagueAdapter, error) {
	selected := filter.Leagues()
	if len(selected) != 1 {
		return nil, fmt.Errorf("this command targets one league; pass -league mlb or -league nba")
	}
	a, ok := leagues.Get(selected[0])
	if !ok {
		return nil, fmt.Errorf("no adapter registered for %s", selected[0].DisplayName())
	}
	return a, nil
}

func parseLeagueFilter(name string) (aggregate.LeagueFilter, error) {
	switch name {
	case "all":
		return aggregate.FilterAll, nil
	case "mlb":
		return aggregate.FilterBaseball, nil
	case "nba":
		return aggregate.FilterBasketball, nil
	}
	return aggregate.FilterAll, fmt.Errorf("unknown league %q: expected all, mlb or nba", name)
}

// parseRange parses the optional schedule bounds. Zero dates are passed
// through; the adapters default them to the current month.
func parseRange(startStr, endStr string) (start, end models.Date, err error) {
	if startStr != "" {
		if start, err = models.ParseDate(startStr); err != nil {
			return start, end, fmt.Errorf("invalid -start-date: %w", err)
		}
	}
	if endStr != "" {
		if end, err = models.ParseDate(endStr); err != nil {
			return start, end, fmt.Errorf("invalid -end-date: %w", err)
		}
	}
	return start, end, nil
}

func usage() {
	fmt.Println("scoreline - plaintext MLB and NBA stats")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  scoreline -todays-games [-league all|mlb|nba] [-detailed]")
	fmt.Println("  scoreline -yesterdays-games [-league all|mlb|nba] [-detailed]")
	fmt.Println("  scoreline -game-id <id> -league mlb|nba [-detailed]")
	fmt.Println("  scoreline -game-id <id> -innings                 (MLB line score)")
	fmt.Println("  scoreline -team-id <id> -league mlb|nba")
	fmt.Println("  scoreline -team-id <id> -schedule -league mlb|nba [-start-date YYYY-MM-DD] [-end-date YYYY-MM-DD]")
	fmt.Println("  scoreline -player-id <id> -league mlb|nba")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "scoreline: %v\n", err)
	os.Exit(1)
}
