package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avezquez/matchscout/internal/domain/event"
	"github.com/avezquez/matchscout/internal/domain/matchstats"
	"github.com/avezquez/matchscout/internal/domain/sport"
	qb "github.com/avezquez/matchscout/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// SaveFixture upserts a scheduled match by URL. Schedule details of an
// existing SCHEDULED event are refreshed in place; a FINISHED event is
// never downgraded by fixture data.
func (r *EventRepository) SaveFixture(ctx context.Context, f event.Fixture) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return persistErr(err, "begin save fixture")
	}
	defer tx.Rollback() //nolint:errcheck

	homeID, err := upsertTeamTx(ctx, tx, f.HomeTeam, f.HomeURL)
	if err != nil {
		return err
	}
	awayID, err := upsertTeamTx(ctx, tx, f.AwayTeam, f.AwayURL)
	if err != nil {
		return err
	}

	existing, found, err := findEventByURLTx(ctx, tx, f.URL)
	if err != nil {
		return err
	}

	switch {
	case !found:
		insert, args, err := qb.InsertInto("events").
			Columns("sport_id", "date", "time", "venue", "url", "status", "home_team_id", "away_team_id").
			Values(sport.FootballID, f.Date, nullableString(f.Time), nullableString(f.Venue),
				f.URL, event.StatusScheduled, homeID, awayID).
			ToSQL()
		if err != nil {
			return persistErr(err, "build insert fixture query")
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return persistErr(err, "insert fixture")
		}

	case !event.IsFinishedStatus(existing.Status.String):
		update, args, err := qb.Update("events").
			Set("date", f.Date).
			Set("time", nullableString(f.Time)).
			Set("venue", nullableString(f.Venue)).
			Where(qb.Eq("id", existing.ID)).
			ToSQL()
		if err != nil {
			return persistErr(err, "build refresh fixture query")
		}
		if _, err := tx.ExecContext(ctx, update, args...); err != nil {
			return persistErr(err, "refresh fixture")
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr(err, "commit save fixture")
	}
	return nil
}

// SaveMatchComplete records a finished match: the event flips to FINISHED,
// the result row is written, and per-player fact rows are attached. When a
// result row already exists the whole call is a no-op so re-scrapes never
// duplicate player facts.
func (r *EventRepository) SaveMatchComplete(ctx context.Context, stats matchstats.MatchStats, date, url string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return persistErr(err, "begin save match")
	}
	defer tx.Rollback() //nolint:errcheck

	homeID, err := upsertTeamTx(ctx, tx, stats.Home.Name, "")
	if err != nil {
		return err
	}
	awayID, err := upsertTeamTx(ctx, tx, stats.Away.Name, "")
	if err != nil {
		return err
	}

	existing, found, err := findEventByURLTx(ctx, tx, url)
	if err != nil {
		return err
	}

	var eventID int64
	if found {
		eventID = existing.ID

		has, err := hasStatsRowTx(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if has {
			return tx.Commit()
		}

		// team ids follow the scorebox names, which may resolve
		// differently than the schedule row did
		update, args, err := qb.Update("events").
			Set("status", event.StatusFinished).
			Set("date", date).
			Set("home_team_id", homeID).
			Set("away_team_id", awayID).
			Where(qb.Eq("id", eventID)).
			ToSQL()
		if err != nil {
			return persistErr(err, "build finish event query")
		}
		if _, err := tx.ExecContext(ctx, update, args...); err != nil {
			return persistErr(err, "finish event")
		}
	} else {
		insert, args, err := qb.InsertInto("events").
			Columns("sport_id", "date", "venue", "url", "status", "home_team_id", "away_team_id").
			Values(sport.FootballID, date, nullableString(stats.Context.Venue), url,
				event.StatusFinished, homeID, awayID).
			ToSQL()
		if err != nil {
			return persistErr(err, "build insert finished event query")
		}
		res, err := tx.ExecContext(ctx, insert, args...)
		if err != nil {
			return persistErr(err, "insert finished event")
		}
		if eventID, err = res.LastInsertId(); err != nil {
			return persistErr(err, "read inserted event id")
		}
	}

	statsInsert, args, err := qb.InsertInto("football_stats").
		Columns("event_id", "home_score", "away_score", "xg_home", "xg_away", "referee", "attendance").
		Values(eventID, stats.Home.Goals, stats.Away.Goals, stats.Home.XG, stats.Away.XG,
			nullableString(stats.Context.Referee), nullableInt(stats.Context.Attendance)).
		Suffix("ON CONFLICT(event_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return persistErr(err, "build insert stats query")
	}
	if _, err := tx.ExecContext(ctx, statsInsert, args...); err != nil {
		return persistErr(err, "insert stats")
	}

	if err := savePlayersTx(ctx, tx, eventID, homeID, stats.Home.Players); err != nil {
		return err
	}
	if err := savePlayersTx(ctx, tx, eventID, awayID, stats.Away.Players); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return persistErr(err, "commit save match")
	}
	return nil
}

func (r *EventRepository) HasCompletedStats(ctx context.Context, url string) (bool, error) {
	var has bool
	err := r.db.GetContext(ctx, &has, `
		SELECT EXISTS(
			SELECT 1 FROM events e
			JOIN football_stats fs ON fs.event_id = e.id
			WHERE e.url = ?
		)`, url)
	if err != nil {
		return false, persistErr(err, "check completed stats")
	}
	return has, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (event.Event, bool, error) {
	query, args, err := qb.Select("id", "sport_id", "date", "time", "venue", "url", "status",
		"home_team_id", "away_team_id").
		From("events").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, persistErr(err, "build get event query")
	}

	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, persistErr(err, "get event")
	}

	return event.Event{
		ID:         row.ID,
		SportID:    row.SportID,
		Date:       row.Date,
		Time:       row.Time.String,
		Venue:      row.Venue.String,
		URL:        row.URL.String,
		Status:     row.Status.String,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
	}, true, nil
}

func (r *EventRepository) TeamURLs(ctx context.Context, id int64) (string, string, error) {
	var row struct {
		HomeURL sql.NullString `db:"home_url"`
		AwayURL sql.NullString `db:"away_url"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT h.url AS home_url, a.url AS away_url
		FROM events e
		JOIN teams h ON h.id = e.home_team_id
		JOIN teams a ON a.id = e.away_team_id
		WHERE e.id = ?`, id)
	if err != nil {
		if isNotFound(err) {
			return "", "", nil
		}
		return "", "", persistErr(err, "get event team urls")
	}
	return row.HomeURL.String, row.AwayURL.String, nil
}

const previewSQL = `
	SELECT e.id, e.date, e.time, e.venue, e.status,
	       h.name AS home_team, a.name AS away_team,
	       fs.home_score, fs.away_score, fs.xg_home, fs.xg_away
	FROM events e
	JOIN teams h ON h.id = e.home_team_id
	JOIN teams a ON a.id = e.away_team_id
	LEFT JOIN football_stats fs ON fs.event_id = e.id`

func (r *EventRepository) List(ctx context.Context) ([]event.Preview, error) {
	var rows []previewRow
	if err := r.db.SelectContext(ctx, &rows, previewSQL+" ORDER BY e.date DESC, e.id DESC"); err != nil {
		return nil, persistErr(err, "list events")
	}

	out := make([]event.Preview, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPreview(row))
	}
	return out, nil
}

func (r *EventRepository) GetPreview(ctx context.Context, id int64) (event.Preview, bool, error) {
	var row previewRow
	if err := r.db.GetContext(ctx, &row, previewSQL+" WHERE e.id = ?", id); err != nil {
		if isNotFound(err) {
			return event.Preview{}, false, nil
		}
		return event.Preview{}, false, persistErr(err, "get event preview")
	}
	return toPreview(row), true, nil
}

func toPreview(row previewRow) event.Preview {
	p := event.Preview{
		ID:       row.ID,
		Date:     row.Date,
		Time:     row.Time.String,
		Venue:    row.Venue.String,
		Status:   event.NormalizeStatus(row.Status.String),
		HomeTeam: row.HomeTeam,
		AwayTeam: row.AwayTeam,
		Score:    "vs",
	}
	if row.HomeScore.Valid && row.AwayScore.Valid {
		p.Score = fmt.Sprintf("%d-%d", row.HomeScore.Int64, row.AwayScore.Int64)
	}
	if row.XGHome.Valid {
		xg := row.XGHome.Float64
		p.XGHome = &xg
	}
	if row.XGAway.Valid {
		xg := row.XGAway.Float64
		p.XGAway = &xg
	}
	return p
}

func findEventByURLTx(ctx context.Context, tx *sqlx.Tx, url string) (eventRow, bool, error) {
	query, args, err := qb.Select("id", "sport_id", "date", "time", "venue", "url", "status",
		"home_team_id", "away_team_id").
		From("events").
		Where(qb.Eq("url", url)).
		ToSQL()
	if err != nil {
		return eventRow{}, false, persistErr(err, "build find event query")
	}

	var row eventRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return eventRow{}, false, nil
		}
		return eventRow{}, false, persistErr(err, "find event by url")
	}
	return row, true, nil
}

func hasStatsRowTx(ctx context.Context, tx *sqlx.Tx, eventID int64) (bool, error) {
	var has bool
	err := tx.GetContext(ctx, &has,
		`SELECT EXISTS(SELECT 1 FROM football_stats WHERE event_id = ?)`, eventID)
	if err != nil {
		return false, persistErr(err, "check stats row")
	}
	return has, nil
}

func savePlayersTx(ctx context.Context, tx *sqlx.Tx, eventID, teamID int64, players []matchstats.PlayerStats) error {
	for _, p := range players {
		playerID, err := getOrInsertPlayerTx(ctx, tx, p.Name)
		if err != nil {
			return err
		}

		insert, args, err := qb.InsertInto("player_match_stats").
			Columns("player_id", "match_id", "team_id", "position", "minutes", "goals", "assists",
				"shots", "shots_on_target", "xg", "xa", "sca", "tackles", "interceptions",
				"fouls_committed", "fouls_drawn").
			Values(playerID, eventID, teamID, p.Position, p.Minutes, p.Goals, p.Assists,
				p.Shots, p.ShotsOnTarget, p.XG, p.XA, p.SCA, p.Tackles, p.Interceptions,
				p.FoulsCommitted, p.FoulsDrawn).
			ToSQL()
		if err != nil {
			return persistErr(err, "build insert player stats query")
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return persistErr(err, "insert player stats")
		}
	}
	return nil
}

func getOrInsertPlayerTx(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	var id int64
	err := tx.GetContext(ctx, &id, `SELECT id FROM players WHERE name = ?`, name)
	if err == nil {
		return id, nil
	}
	if !isNotFound(err) {
		return 0, persistErr(err, "find player")
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO players (name) VALUES (?)`, name)
	if err != nil {
		return 0, persistErr(err, "insert player")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, persistErr(err, "read inserted player id")
	}
	return id, nil
}
