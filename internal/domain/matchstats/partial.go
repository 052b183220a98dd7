package matchstats

// Partial accumulates one player's columns across the per-category tables of
// a match page. Each category's row handler fills its own fields; position
// and minutes follow a first-non-default-wins rule so a later category never
// clobbers what the summary table already set.
type Partial struct {
	Name     string
	Position string
	Minutes  int

	// summary
	XG            float64
	Shots         int
	ShotsOnTarget int
	Goals         int
	Assists       int
	SCA           int
	GCA           int

	// passing
	PassesCompleted   int
	PassesProgressive int
	PassesFinalThird  int
	PassesPenaltyArea int
	KeyPasses         int
	XA                float64

	// pass types
	Corners int

	// defense
	TacklesWon    int
	Interceptions int
	Blocks        int
	Clearances    int

	// misc
	YellowCards    int
	RedCards       int
	FoulsCommitted int
	FoulsDrawn     int
	AerialsWon     int
	AerialsLost    int
}

// PartialSet is the running per-player map for one side of a match.
type PartialSet map[string]*Partial

// Get returns the accumulator for a player, creating it on first sight.
func (s PartialSet) Get(name string) *Partial {
	if p, ok := s[name]; ok {
		return p
	}
	p := &Partial{Name: name}
	s[name] = p
	return p
}
