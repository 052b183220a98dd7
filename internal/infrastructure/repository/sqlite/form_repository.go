package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/avezquez/matchscout/internal/domain/prediction"
	"github.com/avezquez/matchscout/internal/domain/sport"
)

// FormRepository serves the historical reads behind the prediction engine.
type FormRepository struct {
	db *sqlx.DB
}

func NewFormRepository(db *sqlx.DB) *FormRepository {
	return &FormRepository{db: db}
}

func (r *FormRepository) LeagueAverages(ctx context.Context) (prediction.LeagueAverages, error) {
	var row leagueAveragesRow
	err := r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) AS matches,
		       AVG(fs.home_score) AS home_avg,
		       AVG(fs.away_score) AS away_avg
		FROM events e
		JOIN football_stats fs ON fs.event_id = e.id
		WHERE e.sport_id = ?`, sport.FootballID)
	if err != nil {
		return prediction.LeagueAverages{}, persistErr(err, "get league averages")
	}

	return prediction.LeagueAverages{
		Matches: row.Matches,
		HomeAvg: row.HomeAvg.Float64,
		AwayAvg: row.AwayAvg.Float64,
	}, nil
}

// TeamForm averages goals scored and conceded over the team's most recent
// finished matches, as either side, capped at limit. The window is applied
// before aggregation so older history never dilutes current form.
func (r *FormRepository) TeamForm(ctx context.Context, teamID int64, limit int) (prediction.TeamForm, error) {
	var row teamFormRow
	err := r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) AS matches,
		       AVG(scored) AS scored_avg,
		       AVG(conceded) AS conceded_avg
		FROM (
			SELECT CASE WHEN e.home_team_id = ? THEN fs.home_score ELSE fs.away_score END AS scored,
			       CASE WHEN e.home_team_id = ? THEN fs.away_score ELSE fs.home_score END AS conceded
			FROM events e
			JOIN football_stats fs ON fs.event_id = e.id
			WHERE (e.home_team_id = ? OR e.away_team_id = ?) AND e.sport_id = ?
			ORDER BY e.date DESC
			LIMIT ?
		)`, teamID, teamID, teamID, teamID, sport.FootballID, limit)
	if err != nil {
		return prediction.TeamForm{}, persistErr(err, "get team form")
	}

	return prediction.TeamForm{
		Matches:     row.Matches,
		ScoredAvg:   row.ScoredAvg.Float64,
		ConcededAvg: row.ConcededAvg.Float64,
	}, nil
}
