// Package stats derives display statistics from raw counting stats. All
// functions are pure and total: zero-denominator inputs yield zero values,
// never a fault, and rounding is round-half-up at a fixed precision.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/XavierBriggs/Scoreline/pkg/models"
)

// RoundHalfUp rounds v to the given number of decimal places, with exact
// halves rounding away from zero.
func RoundHalfUp(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(v*scale+0.5) / scale
}

// BattingAverage is hits over at-bats rounded to three decimals, 0 when
// no at-bats have been recorded.
func BattingAverage(hits, atBats int) float64 {
	if atBats == 0 {
		return 0
	}
	return RoundHalfUp(float64(hits)/float64(atBats), 3)
}

// FormatAverage renders a batting average in scorebook notation (".333").
// A perfect average renders as "1.000".
func FormatAverage(avg float64) string {
	milli := int(RoundHalfUp(avg*1000, 0))
	if milli >= 1000 {
		return fmt.Sprintf("%d.%03d", milli/1000, milli%1000)
	}
	return fmt.Sprintf(".%03d", milli)
}

// ERA is nine times earned runs over innings pitched, rounded to two
// decimals, 0 when no innings have been pitched.
func ERA(earnedRuns int, ip models.InningsPitched) float64 {
	if ip.IsZero() {
		return 0
	}
	return RoundHalfUp(float64(earnedRuns)*9.0/ip.Float(), 2)
}

// FormatERA renders an ERA with two decimals ("2.70").
func FormatERA(era float64) string {
	return fmt.Sprintf("%.2f", era)
}

// Percentage is makes over attempts as a percentage rounded to one
// decimal, 0 when no attempts were taken.
func Percentage(made, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return RoundHalfUp(float64(made)/float64(attempts)*100, 1)
}

// FormatPercentage renders a shooting percentage ("45.5%").
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// TopBatters selects the n best batters: hits descending, home runs
// descending, then name ascending so the selection is a total order. The
// input is not modified.
func TopBatters(batters []models.PlayerBattingLine, n int) []models.PlayerBattingLine {
	ranked := make([]models.PlayerBattingLine, len(batters))
	copy(ranked, batters)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Batting.Hits != b.Batting.Hits {
			return a.Batting.Hits > b.Batting.Hits
		}
		if a.Batting.HomeRuns != b.Batting.HomeRuns {
			return a.Batting.HomeRuns > b.Batting.HomeRuns
		}
		return a.Name < b.Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopPitchers selects the n best pitchers: strikeouts descending, ERA
// ascending, then name ascending. The input is not modified.
func TopPitchers(pitchers []models.PlayerPitchingLine, n int) []models.PlayerPitchingLine {
	ranked := make([]models.PlayerPitchingLine, len(pitchers))
	copy(ranked, pitchers)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Pitching.Strikeouts != b.Pitching.Strikeouts {
			return a.Pitching.Strikeouts > b.Pitching.Strikeouts
		}
		eraA := ERA(a.Pitching.EarnedRuns, a.Pitching.InningsPitched)
		eraB := ERA(b.Pitching.EarnedRuns, b.Pitching.InningsPitched)
		if eraA != eraB {
			return eraA < eraB
		}
		return a.Name < b.Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SortBoxPlayers orders a basketball box list by points descending with
// name ascending as tie-break, returning a new slice.
func SortBoxPlayers(players []models.BasketballPlayerStats) []models.BasketballPlayerStats {
	sorted := make([]models.BasketballPlayerStats, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}
