package prediction

// Prediction is a probability distribution over a prospective match derived
// from historical form. The three 1X2 buckets sum to 1; over-2.5 and
// both-teams-score are independent markets reported as raw grid sums.
type Prediction struct {
	XGHome     float64
	XGAway     float64
	WinProb    float64
	DrawProb   float64
	LoseProb   float64
	Over25Prob float64
	BTTSProb   float64
}

// TeamForm is a team's scoring record over its most recent finished matches.
type TeamForm struct {
	Matches     int
	ScoredAvg   float64
	ConcededAvg float64
}

// LeagueAverages are league-wide per-side scoring rates over all finished
// matches. Zero Matches means the store has no finished football events yet.
type LeagueAverages struct {
	Matches int
	HomeAvg float64
	AwayAvg float64
}
