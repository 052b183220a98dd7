package prediction

import "context"

// Repository exposes the historical reads the prediction engine needs.
// The engine never writes.
type Repository interface {
	LeagueAverages(ctx context.Context) (LeagueAverages, error)

	// TeamForm aggregates a team's scored/conceded averages over its most
	// recent finished matches, as either side, newest first, capped at limit.
	TeamForm(ctx context.Context, teamID int64, limit int) (TeamForm, error)
}
