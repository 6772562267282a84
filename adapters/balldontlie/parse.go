package balldontlie

import (
	"strconv"
	"strings"

	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func parseTeam(op string, t *teamEntry) (*models.Team, error) {
	if t.ID == nil {
		return nil, missingField(op, "team.id")
	}
	if t.FullName == "" {
		return nil, missingField(op, "team.full_name")
	}
	return &models.Team{
		ID:           *t.ID,
		League:       models.Basketball,
		Name:         t.FullName,
		Abbreviation: t.Abbreviation,
		Location:     t.City,
		Conference:   t.Conference,
		Division:     t.Division,
	}, nil
}

func parsePlayer(op string, p *playerEntry) (*models.Player, error) {
	if p.ID == nil {
		return nil, missingField(op, "player.id")
	}
	if p.FirstName == "" && p.LastName == "" {
		return nil, missingField(op, "player.first_name/last_name")
	}

	player := &models.Player{
		ID:       *p.ID,
		League:   models.Basketball,
		Name:     strings.TrimSpace(p.FirstName + " " + p.LastName),
		Position: p.Position,
		Height:   p.Height,
		Weight:   p.Weight,
	}
	if p.Team != nil {
		team, err := parseTeam(op, p.Team)
		if err != nil {
			return nil, err
		}
		player.Team = team
	}
	return player, nil
}

func parseSeasonAverages(op string, avg *seasonAverageEntry) (*models.BasketballSeasonAverages, error) {
	if avg.GamesPlayed < 0 {
		return nil, sporterr.Errorf(sporterr.KindParse, op, "negative games_played %d", avg.GamesPlayed)
	}
	return &models.BasketballSeasonAverages{
		GamesPlayed:    avg.GamesPlayed,
		Points:         avg.Points,
		Rebounds:       avg.Rebounds,
		Assists:        avg.Assists,
		Steals:         avg.Steals,
		Blocks:         avg.Blocks,
		FieldGoalPct:   avg.FieldGoalPct * 100,
		ThreePointPct:  avg.ThreePointPct * 100,
		FreeThrowPct:   avg.FreeThrowPct * 100,
		MinutesPerGame: avg.Minutes,
	}, nil
}

func parseGame(op string, g *gameEntry) (*models.Game, error) {
	if g.ID == nil {
		return nil, missingField(op, "game.id")
	}
	if g.HomeTeam == nil || g.VisitorTeam == nil {
		return nil, missingField(op, "game.home_team/visitor_team")
	}
	if g.Status == "" {
		return nil, missingField(op, "game.status")
	}
	if g.HomeTeamScore < 0 || g.VisitorTeamScore < 0 {
		return nil, sporterr.Errorf(sporterr.KindParse, op, "negative score")
	}

	home, err := parseTeam(op, g.HomeTeam)
	if err != nil {
		return nil, err
	}
	away, err := parseTeam(op, g.VisitorTeam)
	if err != nil {
		return nil, err
	}

	// Dates arrive either as plain YYYY-MM-DD or with a time suffix.
	datePart := g.Date
	if idx := strings.IndexByte(datePart, 'T'); idx >= 0 {
		datePart = datePart[:idx]
	}
	date, err := models.ParseDate(datePart)
	if err != nil {
		return nil, sporterr.E(sporterr.KindParse, op, err)
	}

	return &models.Game{
		ID:        *g.ID,
		League:    models.Basketball,
		Date:      date,
		Status:    parseStatus(g.Status, g.Period),
		AwayTeam:  *away,
		HomeTeam:  *home,
		AwayScore: g.VisitorTeamScore,
		HomeScore: g.HomeTeamScore,
	}, nil
}

// parseStatus maps the provider's free-form status. "Final" is terminal;
// any game with a running period is live; everything else (a tip-off time
// like "7:00 pm ET") is scheduled.
func parseStatus(status string, period int) models.GameStatus {
	if status == "Final" {
		return models.StatusFinal
	}
	if period > 0 {
		return models.StatusLive
	}
	return models.StatusScheduled
}

func parsePlayerStatLine(op string, line *playerStatLine) (*models.BasketballPlayerStats, int, error) {
	if line.Player == nil {
		return nil, 0, missingField(op, "stat.player")
	}
	if line.Team == nil || line.Team.ID == nil {
		return nil, 0, missingField(op, "stat.team")
	}
	name := strings.TrimSpace(line.Player.FirstName + " " + line.Player.LastName)
	if name == "" {
		return nil, 0, missingField(op, "stat.player name")
	}

	counts := []int{
		line.Points, line.Rebounds, line.Assists, line.Steals, line.Blocks,
		line.FieldGoalsMade, line.FieldGoalsAtt,
		line.ThreePointersMade, line.ThreePointersAtt,
		line.FreeThrowsMade, line.FreeThrowsAtt,
	}
	for _, c := range counts {
		if c < 0 {
			return nil, 0, sporterr.Errorf(sporterr.KindParse, op, "negative stat for %s", name)
		}
	}

	return &models.BasketballPlayerStats{
		Name:              name,
		TeamID:            *line.Team.ID,
		Points:            line.Points,
		Rebounds:          line.Rebounds,
		Assists:           line.Assists,
		Steals:            line.Steals,
		Blocks:            line.Blocks,
		FieldGoalsMade:    line.FieldGoalsMade,
		FieldGoalsAtt:     line.FieldGoalsAtt,
		ThreePointersMade: line.ThreePointersMade,
		ThreePointersAtt:  line.ThreePointersAtt,
		FreeThrowsMade:    line.FreeThrowsMade,
		FreeThrowsAtt:     line.FreeThrowsAtt,
		Minutes:           line.Minutes,
	}, *line.Team.ID, nil
}

func missingField(op, field string) error {
	return sporterr.Errorf(sporterr.KindParse, op, "missing required field %s", field)
}

// Provider response structures matching the balldontlie JSON format.
// Required fields are pointers so absence is detectable.

type singleTeamResponse struct {
	Data *teamEntry `json:"data"`
}

type singlePlayerResponse struct {
	Data *playerEntry `json:"data"`
}

type singleGameResponse struct {
	Data *gameEntry `json:"data"`
}

type gamesResponse struct {
	Data []gameEntry `json:"data"`
	Meta *pageMeta   `json:"meta"`
}

type statsResponse struct {
	Data []playerStatLine `json:"data"`
	Meta *pageMeta        `json:"meta"`
}

type seasonAveragesResponse struct {
	Data []seasonAverageEntry `json:"data"`
}

type pageMeta struct {
	NextCursor *int `json:"next_cursor"`
	PerPage    int  `json:"per_page"`
}

type teamEntry struct {
	ID           *int   `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
}

type playerEntry struct {
	ID        *int       `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Position  string     `json:"position"`
	Height    string     `json:"height"`
	Weight    string     `json:"weight"`
	Team      *teamEntry `json:"team"`
}

type gameEntry struct {
	ID               *int       `json:"id"`
	Date             string     `json:"date"`
	HomeTeam         *teamEntry `json:"home_team"`
	HomeTeamScore    int        `json:"home_team_score"`
	VisitorTeam      *teamEntry `json:"visitor_team"`
	VisitorTeamScore int        `json:"visitor_team_score"`
	Period           int        `json:"period"`
	Status           string     `json:"status"`
	Time             string     `json:"time"`
	Season           int        `json:"season"`
	Postseason       bool       `json:"postseason"`
}

type playerStatLine struct {
	Points            int           `json:"pts"`
	Rebounds          int           `json:"reb"`
	Assists           int           `json:"ast"`
	Steals            int           `json:"stl"`
	Blocks            int           `json:"blk"`
	FieldGoalsMade    int           `json:"fgm"`
	FieldGoalsAtt     int           `json:"fga"`
	ThreePointersMade int           `json:"fg3m"`
	ThreePointersAtt  int           `json:"fg3a"`
	FreeThrowsMade    int           `json:"ftm"`
	FreeThrowsAtt     int           `json:"fta"`
	Minutes           string        `json:"min"`
	Player            *statPlayer   `json:"player"`
	Team              *teamEntry    `json:"team"`
	Game              *statGameInfo `json:"game"`
}

type statPlayer struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type statGameInfo struct {
	ID            int `json:"id"`
	HomeTeamID    int `json:"home_team_id"`
	VisitorTeamID int `json:"visitor_team_id"`
}

type seasonAverageEntry struct {
	GamesPlayed   int     `json:"games_played"`
	Points        float64 `json:"pts"`
	Rebounds      float64 `json:"reb"`
	Assists       float64 `json:"ast"`
	Steals        float64 `json:"stl"`
	Blocks        float64 `json:"blk"`
	FieldGoalPct  float64 `json:"fg_pct"`
	ThreePointPct float64 `json:"fg3_pct"`
	FreeThrowPct  float64 `json:"ft_pct"`
	Minutes       string  `json:"min"`
}
