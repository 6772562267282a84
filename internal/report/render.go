// Package report renders unified model values as plaintext. Rendering is
// pure: same input, same output, no I/O, no locale or timezone lookups
// beyond the dates already resolved upstream.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/XavierBriggs/Scoreline/internal/stats"
	"github.com/XavierBriggs/Scoreline/pkg/models"
	"github.com/XavierBriggs/Scoreline/pkg/sporterr"
)

// RenderCombined renders a combined games report, baseball section first.
// A failed league renders as a single warning line in place of its games.
func RenderCombined(report *models.CombinedReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games for %s\n", report.Date)

	for _, section := range report.Sections {
		fmt.Fprintf(&b, "\n%s\n%s\n", section.League.DisplayName(), strings.Repeat("=", len(section.League.DisplayName())))
		if section.Err != nil {
			b.WriteString(warningLine(section.League, section.Err) + "\n")
			continue
		}
		if len(section.Games) == 0 {
			b.WriteString("No games scheduled.\n")
			continue
		}
		for i := range section.Games {
			writeGame(&b, &section.Games[i], report.Detailed)
		}
	}
	return b.String()
}

// RenderGame renders a single game, with detail blocks when present.
func RenderGame(game *models.Game, detailed bool) string {
	var b strings.Builder
	writeGame(&b, game, detailed)
	return b.String()
}

// RenderSchedule renders a team schedule, one game line per row.
func RenderSchedule(schedule *models.Schedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule for team %d (%s), %s to %s\n",
		schedule.TeamID, schedule.League.DisplayName(), schedule.Start, schedule.End)
	if len(schedule.Games) == 0 {
		b.WriteString("No games scheduled for this period.\n")
		return b.String()
	}
	for i := range schedule.Games {
		b.WriteString(gameLine(&schedule.Games[i]) + "\n")
	}
	return b.String()
}

// RenderTeam renders a team profile.
func RenderTeam(team *models.Team) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Team: %s", team.Name)
	if team.Abbreviation != "" {
		fmt.Fprintf(&b, " (%s)", team.Abbreviation)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "League: %s\n", team.League.DisplayName())
	if team.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", team.Location)
	}
	if team.Conference != "" && team.Division != "" {
		fmt.Fprintf(&b, "Conference/Division: %s / %s\n", team.Conference, team.Division)
	}
	if team.Venue != "" {
		fmt.Fprintf(&b, "Venue: %s\n", team.Venue)
	}
	return b.String()
}

// RenderPlayer renders a player profile with their season stat bag when
// one is attached.
func RenderPlayer(player *models.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player: %s", player.Name)
	if player.Number != "" {
		fmt.Fprintf(&b, " #%s", player.Number)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "League: %s\n", player.League.DisplayName())
	if player.Position != "" {
		fmt.Fprintf(&b, "Position: %s\n", player.Position)
	}
	if player.Bats != "" {
		fmt.Fprintf(&b, "Bats: %s\n", player.Bats)
	}
	if player.Throws != "" {
		fmt.Fprintf(&b, "Throws: %s\n", player.Throws)
	}
	if player.Height != "" {
		fmt.Fprintf(&b, "Height: %s\n", player.Height)
	}
	if player.Weight != "" {
		fmt.Fprintf(&b, "Weight: %s lbs\n", player.Weight)
	}
	if player.Team != nil {
		fmt.Fprintf(&b, "Team: %s\n", player.Team.Name)
	}
	if player.Season != nil {
		writeSeasonStats(&b, player.Season)
	}
	return b.String()
}

// RenderInnings renders a baseball inning-by-inning line score table.
func RenderInnings(gi *models.GameInnings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s @ %s\n", gi.AwayTeam.Name, gi.HomeTeam.Name)
	fmt.Fprintf(&b, "Date: %s  Status: %s\n", gi.Date, gi.Status)
	if len(gi.Innings) == 0 {
		b.WriteString("No innings have been played yet.\n")
		return b.String()
	}

	b.WriteString("     ")
	for _, inning := range gi.Innings {
		fmt.Fprintf(&b, " %2d", inning.Number)
	}
	b.WriteString("  |  R\n")
	fmt.Fprintf(&b, "-----%s--+---\n", strings.Repeat("-", len(gi.Innings)*3))

	writeInningRow(&b, "AWAY", gi.Innings, func(in models.Inning) *int { return in.Away }, gi.AwayRuns)
	writeInningRow(&b, "HOME", gi.Innings, func(in models.Inning) *int { return in.Home }, gi.HomeRuns)
	return b.String()
}

func writeInningRow(b *strings.Builder, label string, innings []models.Inning, pick func(models.Inning) *int, total int) {
	fmt.Fprintf(b, "%-4s|", label)
	for _, inning := range innings {
		if runs := pick(inning); runs != nil {
			fmt.Fprintf(b, " %2d", *runs)
		} else {
			b.WriteString("  -")
		}
	}
	fmt.Fprintf(b, "  | %2d\n", total)
}

// writeGame writes the basic game line plus, when requested, either the
// detail blocks or the not-yet-available notice.
func writeGame(b *strings.Builder, game *models.Game, detailed bool) {
	b.WriteString(gameLine(game) + "\n")
	if !detailed {
		return
	}
	if game.Detail == nil {
		if !game.IsFinal() {
			b.WriteString("  Detailed stats are not available until the game is Final.\n")
		}
		return
	}
	switch {
	case game.Detail.Baseball != nil:
		writeBaseballDetail(b, game.Detail.Baseball)
	case game.Detail.Basketball != nil:
		writeBasketballDetail(b, game.Detail.Basketball)
	}
}

// gameLine is the one-line game summary: date, status, matchup, score
// (an em dash before first pitch or tip-off), venue.
func gameLine(game *models.Game) string {
	score := "—"
	if game.HasStarted() {
		score = fmt.Sprintf("%d-%d", game.AwayScore, game.HomeScore)
	}
	line := fmt.Sprintf("%s  %-9s  %s @ %s  %s",
		game.Date, game.Status, game.AwayTeam.Name, game.HomeTeam.Name, score)
	if game.Venue != "" {
		line += fmt.Sprintf("  (%s)", game.Venue)
	}
	return line
}

func writeBaseballDetail(b *strings.Builder, detail *models.BaseballDetail) {
	writeTeamBoxscore(b, &detail.Away)
	writeTeamBoxscore(b, &detail.Home)
}

func writeTeamBoxscore(b *strings.Builder, box *models.TeamBoxscore) {
	fmt.Fprintf(b, "  %s\n", box.TeamName)
	avg := stats.BattingAverage(box.Batting.Hits, box.Batting.AtBats)
	fmt.Fprintf(b, "    BATTING   R: %d, H: %d, HR: %d, RBI: %d, AVG: %s\n",
		box.Batting.Runs, box.Batting.Hits, box.Batting.HomeRuns, box.Batting.RBI, stats.FormatAverage(avg))
	era := stats.ERA(box.Pitching.EarnedRuns, box.Pitching.InningsPitched)
	fmt.Fprintf(b, "    PITCHING  IP: %s, H: %d, R: %d, SO: %d, ERA: %s\n",
		box.Pitching.InningsPitched, box.Pitching.HitsAllowed, box.Pitching.RunsAllowed,
		box.Pitching.Strikeouts, stats.FormatERA(era))

	if len(box.TopBatters) > 0 {
		b.WriteString("    TOP BATTERS\n")
		for _, batter := range box.TopBatters {
			avg := stats.BattingAverage(batter.Batting.Hits, batter.Batting.AtBats)
			fmt.Fprintf(b, "      %-24s AB: %d  H: %d  R: %d  HR: %d  RBI: %d  AVG: %s\n",
				batter.Name, batter.Batting.AtBats, batter.Batting.Hits, batter.Batting.Runs,
				batter.Batting.HomeRuns, batter.Batting.RBI, stats.FormatAverage(avg))
		}
	}
	if len(box.TopPitchers) > 0 {
		b.WriteString("    TOP PITCHERS\n")
		for _, pitcher := range box.TopPitchers {
			era := stats.ERA(pitcher.Pitching.EarnedRuns, pitcher.Pitching.InningsPitched)
			fmt.Fprintf(b, "      %-24s IP: %s  H: %d  R: %d  ER: %d  SO: %d  ERA: %s\n",
				pitcher.Name, pitcher.Pitching.InningsPitched, pitcher.Pitching.HitsAllowed,
				pitcher.Pitching.RunsAllowed, pitcher.Pitching.EarnedRuns,
				pitcher.Pitching.Strikeouts, stats.FormatERA(era))
		}
	}
}

// writeBasketballDetail writes the away group then the home group, each
// already ordered by points descending with name ascending tie-break.
func writeBasketballDetail(b *strings.Builder, detail *models.BasketballDetail) {
	writeBoxGroup(b, detail.AwayTeamName, detail.AwayPlayers)
	writeBoxGroup(b, detail.HomeTeamName, detail.HomePlayers)
}

func writeBoxGroup(b *strings.Builder, teamName string, players []models.BasketballPlayerStats) {
	if len(players) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s\n", teamName)
	for _, p := range players {
		fg := stats.Percentage(p.FieldGoalsMade, p.FieldGoalsAtt)
		tp := stats.Percentage(p.ThreePointersMade, p.ThreePointersAtt)
		ft := stats.Percentage(p.FreeThrowsMade, p.FreeThrowsAtt)
		fmt.Fprintf(b, "    %s: %d pts, %d reb, %d ast, %d stl, %d blk, FG %s, 3PT %s, FT %s\n",
			p.Name, p.Points, p.Rebounds, p.Assists, p.Steals, p.Blocks,
			stats.FormatPercentage(fg), stats.FormatPercentage(tp), stats.FormatPercentage(ft))
	}
}

func writeSeasonStats(b *strings.Builder, season *models.SeasonStats) {
	if season.Batting != nil {
		avg := stats.BattingAverage(season.Batting.Hits, season.Batting.AtBats)
		fmt.Fprintf(b, "Season batting: AB: %d, H: %d, R: %d, HR: %d, RBI: %d, SB: %d, AVG: %s\n",
			season.Batting.AtBats, season.Batting.Hits, season.Batting.Runs,
			season.Batting.HomeRuns, season.Batting.RBI, season.Batting.StolenBases,
			stats.FormatAverage(avg))
	}
	if season.Pitching != nil {
		era := stats.ERA(season.Pitching.EarnedRuns, season.Pitching.InningsPitched)
		fmt.Fprintf(b, "Season pitching: IP: %s, H: %d, ER: %d, SO: %d, ERA: %s\n",
			season.Pitching.InningsPitched, season.Pitching.HitsAllowed,
			season.Pitching.EarnedRuns, season.Pitching.Strikeouts, stats.FormatERA(era))
	}
	if season.Basketball != nil {
		avg := season.Basketball
		fmt.Fprintf(b, "Season averages (%d games): %.1f pts, %.1f reb, %.1f ast, %.1f stl, %.1f blk, FG %s, 3PT %s, FT %s\n",
			avg.GamesPlayed, avg.Points, avg.Rebounds, avg.Assists, avg.Steals, avg.Blocks,
			stats.FormatPercentage(avg.FieldGoalPct), stats.FormatPercentage(avg.ThreePointPct),
			stats.FormatPercentage(avg.FreeThrowPct))
	}
}

// warningLine turns a failed league into one concise line naming the
// league, failure kind and operation, with no internal detail leaked.
func warningLine(league models.League, err error) string {
	return fmt.Sprintf("WARNING: %s section unavailable: %s", league.DisplayName(), describeFailure(err))
}

func describeFailure(err error) string {
	var se *sporterr.Error
	if !errors.As(err, &se) {
		return "unexpected failure"
	}
	return fmt.Sprintf("%s (%s)", kindText(se.Kind), se.Op)
}

func kindText(kind sporterr.Kind) string {
	switch kind {
	case sporterr.KindNotFound:
		return "not found"
	case sporterr.KindInvalidRange:
		return "invalid date range"
	case sporterr.KindParse:
		return "malformed provider data"
	case sporterr.KindUpstream:
		return "provider unavailable"
	case sporterr.KindRateLimited:
		return "provider rate limit reached"
	case sporterr.KindConfig:
		return "configuration error"
	case sporterr.KindCancelled:
		return "request cancelled"
	case sporterr.KindAggregate:
		return "all providers failed"
	}
	return string(kind)
}
