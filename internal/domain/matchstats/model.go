package matchstats

// MatchStats is the canonical record scraped from one finished match page.
type MatchStats struct {
	Context MatchContext
	Home    TeamStats
	Away    TeamStats
}

// MatchContext holds header metadata parsed from the scorebox meta block.
type MatchContext struct {
	Referee    string
	Venue      string
	Attendance *int
}

// TeamStats is one side's aggregate line for a single match.
type TeamStats struct {
	Name string

	XG         float64
	XGAgainst  float64
	Possession float64

	Shots         int
	ShotsOnTarget int
	Goals         int

	SCA int
	GCA int

	PassesCompleted   int
	PassesProgressive int
	PassesFinalThird  int
	KeyPasses         int

	TacklesWon    int
	Interceptions int
	Blocks        int
	Clearances    int

	AerialsWon  int
	AerialsLost int

	Saves int
	PSxG  float64

	Fouls       int
	YellowCards int
	RedCards    int

	Corners int

	Players []PlayerStats
}

// PlayerStats is the persisted per-player fact line.
type PlayerStats struct {
	Name           string
	Position       string
	Minutes        int
	Goals          int
	Assists        int
	Shots          int
	ShotsOnTarget  int
	XG             float64
	XA             float64
	SCA            int
	Tackles        int
	Interceptions  int
	FoulsCommitted int
	FoulsDrawn     int
}
