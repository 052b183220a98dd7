package event

import "strings"

const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
)

// Event represents one scheduled or completed match. URL is the natural
// external key: the same upstream match is never stored twice no matter how
// many times it is re-scraped.
type Event struct {
	ID         int64
	SportID    string
	Date       string
	Time       string
	Venue      string
	URL        string
	Status     string
	HomeTeamID int64
	AwayTeamID int64
}

// Result is the confirmed outcome attached 1:1 to a FINISHED event. Absence
// of a row means the event has no confirmed result yet.
type Result struct {
	EventID    int64
	HomeScore  int
	AwayScore  int
	XGHome     float64
	XGAway     float64
	Referee    string
	Attendance *int
}

// Fixture is a scheduled match row as extracted from a schedule table.
type Fixture struct {
	Date     string
	Time     string
	Venue    string
	HomeTeam string
	AwayTeam string
	HomeURL  string
	AwayURL  string
	URL      string
}

// MatchLogEntry is one played match from a team's season match-log table:
// the match date plus its report URL. The URL doubles as the dedup key
// across seasons and across both teams of the same match.
type MatchLogEntry struct {
	Date string
	URL  string
}

// Preview is the joined read model served back to the shell.
type Preview struct {
	ID       int64
	Date     string
	Time     string
	HomeTeam string
	AwayTeam string
	Score    string
	Status   string
	Venue    string
	XGHome   *float64
	XGAway   *float64
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}
