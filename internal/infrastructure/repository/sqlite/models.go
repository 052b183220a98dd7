package sqlite

import "database/sql"

type teamRow struct {
	ID      int64          `db:"id"`
	SportID string         `db:"sport_id"`
	Name    string         `db:"name"`
	URL     sql.NullString `db:"url"`
}

type eventRow struct {
	ID         int64          `db:"id"`
	SportID    string         `db:"sport_id"`
	Date       string         `db:"date"`
	Time       sql.NullString `db:"time"`
	Venue      sql.NullString `db:"venue"`
	URL        sql.NullString `db:"url"`
	Status     sql.NullString `db:"status"`
	HomeTeamID int64          `db:"home_team_id"`
	AwayTeamID int64          `db:"away_team_id"`
}

type previewRow struct {
	ID        int64           `db:"id"`
	Date      string          `db:"date"`
	Time      sql.NullString  `db:"time"`
	Venue     sql.NullString  `db:"venue"`
	Status    sql.NullString  `db:"status"`
	HomeTeam  string          `db:"home_team"`
	AwayTeam  string          `db:"away_team"`
	HomeScore sql.NullInt64   `db:"home_score"`
	AwayScore sql.NullInt64   `db:"away_score"`
	XGHome    sql.NullFloat64 `db:"xg_home"`
	XGAway    sql.NullFloat64 `db:"xg_away"`
}

type leagueAveragesRow struct {
	Matches int             `db:"matches"`
	HomeAvg sql.NullFloat64 `db:"home_avg"`
	AwayAvg sql.NullFloat64 `db:"away_avg"`
}

type teamFormRow struct {
	Matches     int             `db:"matches"`
	ScoredAvg   sql.NullFloat64 `db:"scored_avg"`
	ConcededAvg sql.NullFloat64 `db:"conceded_avg"`
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
