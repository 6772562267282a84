// Package testutil holds shared builders and mocks for package tests.
package testutil

import (
	"context"

	"github.com/XavierBriggs/Scoreline/pkg/models"
)

// NewTestGame creates a final game between two named teams.
func NewTestGame(id int, league models.League, date models.Date, awayTeam, homeTeam string, awayScore, homeScore int) models.Game {
	return models.Game{
		ID:        id,
		League:    league,
		Date:      date,
		Status:    models.StatusFinal,
		AwayTeam:  models.Team{ID: id*10 + 1, League: league, Name: awayTeam},
		HomeTeam:  models.Team{ID: id*10 + 2, League: league, Name: homeTeam},
		AwayScore: awayScore,
		HomeScore: homeScore,
	}
}

// NewTestBattingLine creates a named batting line.
func NewTestBattingLine(name string, atBats, hits, runs, homeRuns, rbi int) models.PlayerBattingLine {
	return models.PlayerBattingLine{
		Name: name,
		Batting: models.BattingStats{
			AtBats:   atBats,
			Hits:     hits,
			Runs:     runs,
			HomeRuns: homeRuns,
			RBI:      rbi,
		},
	}
}

// NewTestPitchingLine creates a named pitching line.
func NewTestPitchingLine(name string, ip models.InningsPitched, earnedRuns, strikeouts int) models.PlayerPitchingLine {
	return models.PlayerPitchingLine{
		Name: name,
		Pitching: models.PitchingStats{
			InningsPitched: ip,
			EarnedRuns:     earnedRuns,
			Strikeouts:     strikeouts,
		},
	}
}

// NewTestBoxPlayer creates a basketball box line with plausible shooting
// splits derived from the points total.
func NewTestBoxPlayer(name string, teamID, points, rebounds, assists int) models.BasketballPlayerStats {
	return models.BasketballPlayerStats{
		Name:           name,
		TeamID:         teamID,
		Points:         points,
		Rebounds:       rebounds,
		Assists:        assists,
		FieldGoalsMade: points / 2,
		FieldGoalsAtt:  points,
		Minutes:        "32:00",
	}
}

// MockLeagueAdapter is a test adapter with pluggable behavior per method.
// Unset methods return empty values.
type MockLeagueAdapter struct {
	LeagueValue     models.League
	GetPlayerFunc   func(ctx context.Context, id int) (*models.Player, error)
	GetTeamFunc     func(ctx context.Context, id int) (*models.Team, error)
	GetScheduleFunc func(ctx context.Context, teamID int, start, end models.Date) (*models.Schedule, error)
	GetGameFunc     func(ctx context.Context, id int) (*models.Game, error)
	ListGamesFunc   func(ctx context.Context, date models.Date) ([]models.Game, error)
	EnrichFunc      func(ctx context.Context, games []models.Game, detailed bool) ([]models.Game, error)
}

func (m *MockLeagueAdapter) League() models.League {
	return m.LeagueValue
}

func (m *MockLeagueAdapter) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, id)
	}
	return &models.Player{ID: id, League: m.LeagueValue}, nil
}

func (m *MockLeagueAdapter) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(ctx, id)
	}
	return &models.Team{ID: id, League: m.LeagueValue}, nil
}

func (m *MockLeagueAdapter) GetSchedule(ctx context.Context, teamID int, start, end models.Date) (*models.Schedule, error) {
	if m.GetScheduleFunc != nil {
		return m.GetScheduleFunc(ctx, teamID, start, end)
	}
	return &models.Schedule{TeamID: teamID, League: m.LeagueValue, Start: start, End: end}, nil
}

func (m *MockLeagueAdapter) GetGame(ctx context.Context, id int) (*models.Game, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(ctx, id)
	}
	return &models.Game{ID: id, League: m.LeagueValue}, nil
}

func (m *MockLeagueAdapter) ListGames(ctx context.Context, date models.Date) ([]models.Game, error) {
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc(ctx, date)
	}
	return []models.Game{}, nil
}

func (m *MockLeagueAdapter) Enrich(ctx context.Context, games []models.Game, detailed bool) ([]models.Game, error) {
	if m.EnrichFunc != nil {
		return m.EnrichFunc(ctx, games, detailed)
	}
	return games, nil
}
