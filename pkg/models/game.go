package models

import "time"

// Team is a league-scoped team. Team ids are provider-scoped integers and
// only unique within a league.
type Team struct {
	ID           int
	League       League
	Name         string
	Abbreviation string
	Venue        string
	Location     string
	Conference   string
	Division     string
}

// Player references its team, it does not own it. The season stat bag is
// attached only when the lookup requested it.
type Player struct {
	ID       int
	League   League
	Name     string
	Team     *Team
	Number   string
	Position string
	Bats     string
	Throws   string
	Height   string
	Weight   string
	Season   *SeasonStats
}

// Game is a single game in either league. Scores are meaningful only when
// Status is not StatusScheduled. Detail is present only when detailed
// stats were requested and the game is Final.
type Game struct {
	ID        int
	League    League
	Date      Date
	StartTime time.Time
	Status    GameStatus
	HomeTeam  Team
	AwayTeam  Team
	HomeScore int
	AwayScore int
	Venue     string
	Detail    *DetailedStats
}

// HasStarted reports whether scores carry meaning yet.
func (g *Game) HasStarted() bool {
	return g.Status == StatusLive || g.Status == StatusFinal
}

// IsFinal reports whether detailed stats are obtainable for the game.
func (g *Game) IsFinal() bool {
	return g.Status == StatusFinal
}

// Schedule is a team's games over an inclusive date range, sorted by date
// ascending.
type Schedule struct {
	TeamID int
	League League
	Start  Date
	End    Date
	Games  []Game
}

// LeagueSection is one league's slice of a combined report. When the
// league's fetch failed, Err is set and Games is empty; the renderer turns
// Err into a single warning line.
type LeagueSection struct {
	League League
	Games  []Game
	Err    error
}

// CombinedReport is the merged output of a combined games query. Sections
// always appear in LeagueOrder regardless of fetch completion order.
type CombinedReport struct {
	Date     Date
	Detailed bool
	Sections []LeagueSection
}

// Inning is one inning's runs. A nil value means the half-inning was not
// played (e.g. the bottom of the ninth when the home team leads).
type Inning struct {
	Number int
	Away   *int
	Home   *int
}

// GameInnings is a baseball game's inning-by-inning line score.
type GameInnings struct {
	GameID   int
	Date     Date
	Status   GameStatus
	AwayTeam Team
	HomeTeam Team
	Innings  []Inning
	AwayRuns int
	HomeRuns int
}
