package matchstats

// Aggregate folds one side's per-player partials into team totals. Every
// counting stat is the sum over players; aggregate xG is the sum of
// per-player xG. Possession and goalkeeping are not derivable from the
// per-player category tables and stay at their zero defaults.
func Aggregate(players PartialSet, teamName string) TeamStats {
	ts := TeamStats{Name: teamName}
	for _, p := range players {
		ts.XG += p.XG
		ts.Shots += p.Shots
		ts.ShotsOnTarget += p.ShotsOnTarget
		ts.Goals += p.Goals
		ts.SCA += p.SCA
		ts.GCA += p.GCA
		ts.PassesCompleted += p.PassesCompleted
		ts.PassesProgressive += p.PassesProgressive
		ts.PassesFinalThird += p.PassesFinalThird
		ts.KeyPasses += p.KeyPasses
		ts.TacklesWon += p.TacklesWon
		ts.Interceptions += p.Interceptions
		ts.Blocks += p.Blocks
		ts.Clearances += p.Clearances
		ts.AerialsWon += p.AerialsWon
		ts.AerialsLost += p.AerialsLost
		ts.Fouls += p.FoulsCommitted
		ts.YellowCards += p.YellowCards
		ts.RedCards += p.RedCards
		ts.Corners += p.Corners

		ts.Players = append(ts.Players, PlayerStats{
			Name:           p.Name,
			Position:       p.Position,
			Minutes:        p.Minutes,
			Goals:          p.Goals,
			Assists:        p.Assists,
			Shots:          p.Shots,
			ShotsOnTarget:  p.ShotsOnTarget,
			XG:             p.XG,
			XA:             p.XA,
			SCA:            p.SCA,
			Tackles:        p.TacklesWon,
			Interceptions:  p.Interceptions,
			FoulsCommitted: p.FoulsCommitted,
			FoulsDrawn:     p.FoulsDrawn,
		})
	}

	return ts
}

// Build assembles the canonical match record from both sides' partials.
// Each side's xG-against is the other side's aggregate xG; a two-sided match
// has no independent "against" source.
func Build(ctx MatchContext, homeName, awayName string, home, away PartialSet) MatchStats {
	homeStats := Aggregate(home, homeName)
	awayStats := Aggregate(away, awayName)
	homeStats.XGAgainst = awayStats.XG
	awayStats.XGAgainst = homeStats.XG

	return MatchStats{
		Context: ctx,
		Home:    homeStats,
		Away:    awayStats,
	}
}
