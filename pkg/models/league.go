package models

// League identifies one of the two supported leagues.
type League string

const (
	Baseball   League = "baseball"
	Basketball League = "basketball"
)

// DisplayName returns the human-readable league name.
func (l League) DisplayName() string {
	switch l {
	case Baseball:
		return "MLB"
	case Basketball:
		return "NBA"
	}
	return string(l)
}

// LeagueOrder is the fixed rendering order for combined reports. The
// baseball section always precedes the basketball section regardless of
// which league's fetch completes first.
func LeagueOrder() []League {
	return []League{Baseball, Basketball}
}

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	StatusScheduled GameStatus = "Scheduled"
	StatusLive      GameStatus = "Live"
	StatusFinal     GameStatus = "Final"
)
