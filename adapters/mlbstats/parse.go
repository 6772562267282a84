package mlbstats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/XavierBriggs/Scoreline/internal/stats"
	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
)

const topPerformers = 3

func itoa(n int) string {
	return strconv.Itoa(n)
}

// parseTeam translates a provider team. Id and name are required; a
// missing required field is a parse error, never a silent default.
func parseTeam(op string, t *teamEntry) (*models.Team, error) {
	if t.ID == nil {
		return nil, missingField(op, "team.id")
	}
	if t.Name == "" {
		return nil, missingField(op, "team.name")
	}
	team := &models.Team{
		ID:           *t.ID,
		League:       models.Baseball,
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
		Location:     t.LocationName,
	}
	if t.Venue != nil {
		team.Venue = t.Venue.Name
	}
	if t.League != nil {
		team.Conference = t.League.Name
	}
	if t.Division != nil {
		team.Division = t.Division.Name
	}
	return team, nil
}

func parsePlayer(op string, p *personEntry) (*models.Player, error) {
	if p.ID == nil {
		return nil, missingField(op, "person.id")
	}
	if p.FullName == "" {
		return nil, missingField(op, "person.fullName")
	}

	player := &models.Player{
		ID:     *p.ID,
		League: models.Baseball,
		Name:   p.FullName,
		Number: p.PrimaryNumber,
	}
	if p.PrimaryPosition != nil {
		player.Position = p.PrimaryPosition.Abbreviation
	}
	if p.BatSide != nil {
		player.Bats = p.BatSide.Description
	}
	if p.PitchHand != nil {
		player.Throws = p.PitchHand.Description
	}
	if p.CurrentTeam != nil {
		team, err := parseTeam(op, p.CurrentTeam)
		if err != nil {
			return nil, err
		}
		player.Team = team
	}

	season, err := parseSeasonStats(op, p.Stats)
	if err != nil {
		return nil, err
	}
	player.Season = season
	return player, nil
}

// parseSeasonStats extracts the hitting and pitching season splits. A
// player with no splits carries no stat bag at all.
func parseSeasonStats(op string, groups []statsGroup) (*models.SeasonStats, error) {
	season := &models.SeasonStats{}
	for _, group := range groups {
		if group.Group == nil || len(group.Splits) == 0 {
			continue
		}
		stat := group.Splits[0].Stat
		if stat == nil {
			continue
		}
		switch group.Group.DisplayName {
		case "hitting":
			batting, err := parseBattingBlock(op, &battingBlock{
				AtBats:      stat.AtBats,
				Hits:        stat.Hits,
				Runs:        stat.Runs,
				HomeRuns:    stat.HomeRuns,
				RBI:         stat.RBI,
				StolenBases: stat.StolenBases,
				BaseOnBalls: stat.BaseOnBalls,
				StrikeOuts:  stat.StrikeOuts,
			})
			if err != nil {
				return nil, err
			}
			season.Batting = batting
		case "pitching":
			pitching, err := parsePitchingBlock(op, &pitchingBlock{
				InningsPitched: stat.InningsPitched,
				Hits:           stat.Hits,
				Runs:           stat.Runs,
				EarnedRuns:     stat.EarnedRuns,
				BaseOnBalls:    stat.BaseOnBalls,
				StrikeOuts:     stat.StrikeOuts,
				HomeRuns:       stat.HomeRuns,
			})
			if err != nil {
				return nil, err
			}
			season.Pitching = pitching
		}
	}
	if season.Batting == nil && season.Pitching == nil {
		return nil, nil
	}
	return season, nil
}

func parseScheduleGames(op string, resp *scheduleResponse) ([]models.Game, error) {
	var games []models.Game
	for _, date := range resp.Dates {
		for i := range date.Games {
			game, err := parseGame(op, &date.Games[i])
			if err != nil {
				return nil, err
			}
			games = append(games, *game)
		}
	}
	return games, nil
}

func parseGame(op string, sg *scheduleGame) (*models.Game, error) {
	if sg.GamePk == nil {
		return nil, missingField(op, "game.gamePk")
	}
	if sg.Status == nil {
		return nil, missingField(op, "game.status")
	}
	if sg.Teams == nil || sg.Teams.Away == nil || sg.Teams.Home == nil {
		return nil, missingField(op, "game.teams")
	}

	status, err := parseStatus(op, sg.Status.AbstractGameState)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, sg.GameDate)
	if err != nil {
		return nil, sporterr.Errorf(sporterr.KindParse, op, "invalid gameDate %q", sg.GameDate)
	}

	away, awayScore, err := parseGameTeam(op, sg.Teams.Away)
	if err != nil {
		return nil, err
	}
	home, homeScore, err := parseGameTeam(op, sg.Teams.Home)
	if err != nil {
		return nil, err
	}

	game := &models.Game{
		ID:        *sg.GamePk,
		League:    models.Baseball,
		Date:      models.DateOf(startTime),
		StartTime: startTime,
		Status:    status,
		AwayTeam:  *away,
		HomeTeam:  *home,
		AwayScore: awayScore,
		HomeScore: homeScore,
	}
	if sg.Venue != nil {
		game.Venue = sg.Venue.Name
	}
	return game, nil
}

func parseGameTeam(op string, gt *gameTeam) (*models.Team, int, error) {
	if gt.Team == nil {
		return nil, 0, missingField(op, "game team")
	}
	team, err := parseTeam(op, gt.Team)
	if err != nil {
		return nil, 0, err
	}
	score := 0
	if gt.Score != nil {
		if *gt.Score < 0 {
			return nil, 0, sporterr.Errorf(sporterr.KindParse, op, "negative score %d", *gt.Score)
		}
		score = *gt.Score
	}
	return team, score, nil
}

func parseStatus(op, state string) (models.GameStatus, error) {
	switch state {
	case "Preview":
		return models.StatusScheduled, nil
	case "Live":
		return models.StatusLive, nil
	case "Final":
		return models.StatusFinal, nil
	}
	return "", sporterr.Errorf(sporterr.KindParse, op, "unknown game state %q", state)
}

func parseBoxscore(op string, resp *boxscoreResponse) (*models.BaseballDetail, error) {
	if resp.Teams == nil || resp.Teams.Away == nil || resp.Teams.Home == nil {
		return nil, missingField(op, "boxscore.teams")
	}
	away, err := parseTeamBoxscore(op, resp.Teams.Away)
	if err != nil {
		return nil, err
	}
	home, err := parseTeamBoxscore(op, resp.Teams.Home)
	if err != nil {
		return nil, err
	}
	return &models.BaseballDetail{Away: *away, Home: *home}, nil
}

func parseTeamBoxscore(op string, bt *boxTeam) (*models.TeamBoxscore, error) {
	if bt.Team == nil || bt.Team.Name == "" {
		return nil, missingField(op, "boxscore team.name")
	}
	if bt.TeamStats == nil || bt.TeamStats.Batting == nil || bt.TeamStats.Pitching == nil {
		return nil, missingField(op, "boxscore teamStats")
	}

	batting, err := parseBattingBlock(op, bt.TeamStats.Batting)
	if err != nil {
		return nil, err
	}
	pitching, err := parsePitchingBlock(op, bt.TeamStats.Pitching)
	if err != nil {
		return nil, err
	}

	box := &models.TeamBoxscore{
		TeamName: bt.Team.Name,
		Batting:  *batting,
		Pitching: *pitching,
	}

	// Roster ids reference the players map by "ID<n>" keys. Entries the
	// provider omits from the map are skipped; a present entry with a
	// missing name or stat block is a schema mismatch.
	for _, id := range bt.Batters {
		entry, ok := bt.Players[playerKey(id)]
		if !ok || entry.Stats == nil || entry.Stats.Batting == nil {
			continue
		}
		if entry.Person == nil || entry.Person.FullName == "" {
			return nil, missingField(op, "batter person.fullName")
		}
		line, err := parseBattingBlock(op, entry.Stats.Batting)
		if err != nil {
			return nil, err
		}
		box.Batters = append(box.Batters, models.PlayerBattingLine{
			Name:    entry.Person.FullName,
			Batting: *line,
		})
	}

	for _, id := range bt.Pitchers {
		entry, ok := bt.Players[playerKey(id)]
		if !ok || entry.Stats == nil || entry.Stats.Pitching == nil {
			continue
		}
		if entry.Person == nil || entry.Person.FullName == "" {
			return nil, missingField(op, "pitcher person.fullName")
		}
		line, err := parsePitchingBlock(op, entry.Stats.Pitching)
		if err != nil {
			return nil, err
		}
		box.Pitchers = append(box.Pitchers, models.PlayerPitchingLine{
			Name:     entry.Person.FullName,
			Pitching: *line,
		})
	}

	box.TopBatters = stats.TopBatters(box.Batters, topPerformers)
	box.TopPitchers = stats.TopPitchers(box.Pitchers, topPerformers)
	return box, nil
}

func parseBattingBlock(op string, b *battingBlock) (*models.BattingStats, error) {
	counts := []int{b.AtBats, b.Hits, b.Runs, b.HomeRuns, b.RBI, b.StolenBases, b.BaseOnBalls, b.StrikeOuts}
	for _, c := range counts {
		if c < 0 {
			return nil, sporterr.Errorf(sporterr.KindParse, op, "negative batting stat %d", c)
		}
	}
	return &models.BattingStats{
		AtBats:      b.AtBats,
		Hits:        b.Hits,
		Runs:        b.Runs,
		HomeRuns:    b.HomeRuns,
		RBI:         b.RBI,
		StolenBases: b.StolenBases,
		Walks:       b.BaseOnBalls,
		Strikeouts:  b.StrikeOuts,
	}, nil
}

func parsePitchingBlock(op string, p *pitchingBlock) (*models.PitchingStats, error) {
	if p.InningsPitched == "" {
		return nil, missingField(op, "pitching.inningsPitched")
	}
	ip, err := models.ParseInningsPitched(p.InningsPitched)
	if err != nil {
		return nil, sporterr.E(sporterr.KindParse, op, err)
	}
	counts := []int{p.Hits, p.Runs, p.EarnedRuns, p.BaseOnBalls, p.StrikeOuts, p.HomeRuns}
	for _, c := range counts {
		if c < 0 {
			return nil, sporterr.Errorf(sporterr.KindParse, op, "negative pitching stat %d", c)
		}
	}
	return &models.PitchingStats{
		InningsPitched:  ip,
		HitsAllowed:     p.Hits,
		RunsAllowed:     p.Runs,
		EarnedRuns:      p.EarnedRuns,
		Walks:           p.BaseOnBalls,
		Strikeouts:      p.StrikeOuts,
		HomeRunsAllowed: p.HomeRuns,
	}, nil
}

func parseInnings(op string, game *models.Game, resp *linescoreResponse) (*models.GameInnings, error) {
	gi := &models.GameInnings{
		GameID:   game.ID,
		Date:     game.Date,
		Status:   game.Status,
		AwayTeam: game.AwayTeam,
		HomeTeam: game.HomeTeam,
	}
	for _, inning := range resp.Innings {
		entry := models.Inning{Number: inning.Num}
		if inning.Away != nil {
			entry.Away = inning.Away.Runs
		}
		if inning.Home != nil {
			entry.Home = inning.Home.Runs
		}
		gi.Innings = append(gi.Innings, entry)
	}
	if resp.Teams != nil {
		if resp.Teams.Away != nil && resp.Teams.Away.Runs != nil {
			gi.AwayRuns = *resp.Teams.Away.Runs
		}
		if resp.Teams.Home != nil && resp.Teams.Home.Runs != nil {
			gi.HomeRuns = *resp.Teams.Home.Runs
		}
	}
	return gi, nil
}

func playerKey(id int) string {
	return fmt.Sprintf("ID%d", id)
}

func missingField(op, field string) error {
	return sporterr.Errorf(sporterr.KindParse, op, "missing required field %s", field)
}

// Provider response structures matching the MLB Stats API JSON format.
// Required fields are pointers so absence is detectable.

type teamsResponse struct {
	Teams []teamEntry `json:"teams"`
}

type teamEntry struct {
	ID           *int       `json:"id"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
	LocationName string     `json:"locationName"`
	Venue        *nameField `json:"venue"`
	League       *nameField `json:"league"`
	Division     *nameField `json:"division"`
}

type nameField struct {
	Name string `json:"name"`
}

type peopleResponse struct {
	People []personEntry `json:"people"`
}

type personEntry struct {
	ID              *int          `json:"id"`
	FullName        string        `json:"fullName"`
	PrimaryNumber   string        `json:"primaryNumber"`
	PrimaryPosition *positionInfo `json:"primaryPosition"`
	BatSide         *codedField   `json:"batSide"`
	PitchHand       *codedField   `json:"pitchHand"`
	CurrentTeam     *teamEntry    `json:"currentTeam"`
	Stats           []statsGroup  `json:"stats"`
}

type positionInfo struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type codedField struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type statsGroup struct {
	Group  *displayName `json:"group"`
	Splits []statSplit  `json:"splits"`
}

type displayName struct {
	DisplayName string `json:"displayName"`
}

type statSplit struct {
	Stat *statBlock `json:"stat"`
}

// statBlock is shared by team and player stat objects; hitting and
// pitching blocks use disjoint key subsets of it.
type statBlock = battingPitchingBlock

type battingPitchingBlock struct {
	AtBats         int    `json:"atBats"`
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	HomeRuns       int    `json:"homeRuns"`
	RBI            int    `json:"rbi"`
	StolenBases    int    `json:"stolenBases"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	StrikeOuts     int    `json:"strikeOuts"`
	EarnedRuns     int    `json:"earnedRuns"`
	InningsPitched string `json:"inningsPitched"`
}

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk   *int        `json:"gamePk"`
	GameDate string      `json:"gameDate"`
	Status   *gameStatus `json:"status"`
	Teams    *gameTeams  `json:"teams"`
	Venue    *nameField  `json:"venue"`
}

type gameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
}

type gameTeams struct {
	Away *gameTeam `json:"away"`
	Home *gameTeam `json:"home"`
}

type gameTeam struct {
	Score *int       `json:"score"`
	Team  *teamEntry `json:"team"`
}

type boxscoreResponse struct {
	Teams *boxTeams `json:"teams"`
}

type boxTeams struct {
	Away *boxTeam `json:"away"`
	Home *boxTeam `json:"home"`
}

type boxTeam struct {
	Team      *teamEntry           `json:"team"`
	TeamStats *teamStatBlocks      `json:"teamStats"`
	Batters   []int                `json:"batters"`
	Pitchers  []int                `json:"pitchers"`
	Players   map[string]boxPlayer `json:"players"`
}

type teamStatBlocks struct {
	Batting  *battingBlock  `json:"batting"`
	Pitching *pitchingBlock `json:"pitching"`
}

type battingBlock struct {
	AtBats      int `json:"atBats"`
	Hits        int `json:"hits"`
	Runs        int `json:"runs"`
	HomeRuns    int `json:"homeRuns"`
	RBI         int `json:"rbi"`
	StolenBases int `json:"stolenBases"`
	BaseOnBalls int `json:"baseOnBalls"`
	StrikeOuts  int `json:"strikeOuts"`
}

type pitchingBlock struct {
	InningsPitched string `json:"inningsPitched"`
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	EarnedRuns     int    `json:"earnedRuns"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	StrikeOuts     int    `json:"strikeOuts"`
	HomeRuns       int    `json:"homeRuns"`
}

type boxPlayer struct {
	Person *personRef       `json:"person"`
	Stats  *playerStatPairs `json:"stats"`
}

type personRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type playerStatPairs struct {
	Batting  *battingBlock  `json:"batting"`
	Pitching *pitchingBlock `json:"pitching"`
}

type linescoreResponse struct {
	Innings []linescoreInning `json:"innings"`
	Teams   *linescoreTeams   `json:"teams"`
}

type linescoreInning struct {
	Num  int         `json:"num"`
	Away *inningHalf `json:"away"`
	Home *inningHalf `json:"home"`
}

type inningHalf struct {
	Runs *int `json:"runs"`
}

type linescoreTeams struct {
	Away *inningHalf `json:"away"`
	Home *inningHalf `json:"home"`
}
