package models

import (
	"fmt"
	"strconv"
	"strings"
)

// InningsPitched represents innings in baseball's thirds notation, where
// "6.2" means six complete innings plus two outs.
type InningsPitched struct {
	Complete int
	Thirds   int
}

// ParseInningsPitched parses provider strings like "6.2" or "9". The
// fractional digit must be 0, 1 or 2.
func ParseInningsPitched(s string) (InningsPitched, error) {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		complete, err := strconv.Atoi(parts[0])
		if err != nil || complete < 0 {
			return InningsPitched{}, fmt.Errorf("invalid innings pitched %q", s)
		}
		return InningsPitched{Complete: complete}, nil
	case 2:
		complete, err := strconv.Atoi(parts[0])
		if err != nil || complete < 0 {
			return InningsPitched{}, fmt.Errorf("invalid innings pitched %q", s)
		}
		thirds, err := strconv.Atoi(parts[1])
		if err != nil || thirds < 0 || thirds > 2 {
			return InningsPitched{}, fmt.Errorf("invalid partial innings in %q", s)
		}
		return InningsPitched{Complete: complete, Thirds: thirds}, nil
	}
	return InningsPitched{}, fmt.Errorf("invalid innings pitched %q", s)
}

// Float converts to a fractional inning count (6.2 becomes 6.666...).
func (ip InningsPitched) Float() float64 {
	return float64(ip.Complete) + float64(ip.Thirds)/3.0
}

// IsZero reports whether no outs have been recorded.
func (ip InningsPitched) IsZero() bool {
	return ip.Complete == 0 && ip.Thirds == 0
}

// String renders the thirds notation ("6.2", "9.0").
func (ip InningsPitched) String() string {
	return fmt.Sprintf("%d.%d", ip.Complete, ip.Thirds)
}

// BattingStats are raw batting counting stats for a team or player.
type BattingStats struct {
	AtBats      int
	Hits        int
	Runs        int
	HomeRuns    int
	RBI         int
	StolenBases int
	Walks       int
	Strikeouts  int
}

// PitchingStats are raw pitching counting stats for a team or player.
type PitchingStats struct {
	InningsPitched  InningsPitched
	HitsAllowed     int
	RunsAllowed     int
	EarnedRuns      int
	Walks           int
	Strikeouts      int
	HomeRunsAllowed int
}

// PlayerBattingLine is one batter's line in a boxscore.
type PlayerBattingLine struct {
	Name    string
	Batting BattingStats
}

// PlayerPitchingLine is one pitcher's line in a boxscore.
type PlayerPitchingLine struct {
	Name     string
	Pitching PitchingStats
}

// BasketballPlayerStats is one player's line in a basketball boxscore.
type BasketballPlayerStats struct {
	Name              string
	TeamID            int
	Points            int
	Rebounds          int
	Assists           int
	Steals            int
	Blocks            int
	FieldGoalsMade    int
	FieldGoalsAtt     int
	ThreePointersMade int
	ThreePointersAtt  int
	FreeThrowsMade    int
	FreeThrowsAtt     int
	Minutes           string
}

// TeamBoxscore is one team's side of a baseball boxscore.
type TeamBoxscore struct {
	TeamName string
	Batting  BattingStats
	Pitching PitchingStats
	Batters  []PlayerBattingLine
	Pitchers []PlayerPitchingLine

	// Top performer lists, selected by the stats calculator: batters by
	// hits then home runs descending, pitchers by strikeouts descending
	// with ERA ascending as tie-break.
	TopBatters  []PlayerBattingLine
	TopPitchers []PlayerPitchingLine
}

// BaseballDetail is the baseball variant of a game's detailed stats.
type BaseballDetail struct {
	Away TeamBoxscore
	Home TeamBoxscore
}

// BasketballDetail is the basketball variant: per-team player lists,
// already ordered by points descending with name ascending tie-break.
type BasketballDetail struct {
	AwayTeamName string
	HomeTeamName string
	AwayPlayers  []BasketballPlayerStats
	HomePlayers  []BasketballPlayerStats
}

// DetailedStats is a tagged variant: exactly one of the two fields is set,
// matching the game's league. The two leagues' detail shapes share no
// behavior, only a rendering entry point.
type DetailedStats struct {
	Baseball   *BaseballDetail
	Basketball *BasketballDetail
}

// BasketballSeasonAverages is a player's per-game season stat line.
type BasketballSeasonAverages struct {
	GamesPlayed    int
	Points         float64
	Rebounds       float64
	Assists        float64
	Steals         float64
	Blocks         float64
	FieldGoalPct   float64
	ThreePointPct  float64
	FreeThrowPct   float64
	MinutesPerGame string
}

// SeasonStats is a player's full-season stat bag, a tagged variant like
// DetailedStats. A baseball player may carry batting, pitching or both.
type SeasonStats struct {
	Batting    *BattingStats
	Pitching   *PitchingStats
	Basketball *BasketballSeasonAverages
}
