package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sports (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS teams (
	id       INTEGER PRIMARY KEY,
	sport_id TEXT DEFAULT 'football' REFERENCES sports(id),
	name     TEXT NOT NULL,
	url      TEXT,
	UNIQUE(sport_id, name)
);

CREATE TABLE IF NOT EXISTS events (
	id           INTEGER PRIMARY KEY,
	sport_id     TEXT NOT NULL REFERENCES sports(id),
	date         TEXT NOT NULL,
	time         TEXT,
	venue        TEXT,
	url          TEXT UNIQUE,
	status       TEXT,
	home_team_id INTEGER NOT NULL REFERENCES teams(id),
	away_team_id INTEGER NOT NULL REFERENCES teams(id)
);

CREATE TABLE IF NOT EXISTS football_stats (
	event_id   INTEGER PRIMARY KEY REFERENCES events(id),
	home_score INTEGER,
	away_score INTEGER,
	xg_home    REAL,
	xg_away    REAL,
	referee    TEXT,
	attendance INTEGER
);

CREATE TABLE IF NOT EXISTS players (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS player_match_stats (
	id        INTEGER PRIMARY KEY,
	player_id INTEGER NOT NULL REFERENCES players(id),
	match_id  INTEGER NOT NULL REFERENCES events(id),
	team_id   INTEGER NOT NULL REFERENCES teams(id),

	position        TEXT,
	minutes         INTEGER,
	goals           INTEGER,
	assists         INTEGER,
	shots           INTEGER,
	shots_on_target INTEGER,
	xg              REAL,
	xa              REAL,
	sca             INTEGER,
	tackles         INTEGER,
	interceptions   INTEGER,
	fouls_committed INTEGER,
	fouls_drawn     INTEGER
);

INSERT OR IGNORE INTO sports VALUES ('football', 'Football');
`

// legacyMigrationSQL folds the pre-split single "matches" table into the
// events/football_stats pair. Events keep their legacy ids so foreign rows
// stay valid; stats rows are created only for matches that actually had a
// result, so absence of a stats row still means "no result". The legacy
// table is renamed, not dropped.
const legacyMigrationSQL = `
INSERT OR IGNORE INTO events (id, sport_id, date, time, venue, url, status, home_team_id, away_team_id)
SELECT
	id, 'football', date, time, venue, url,
	CASE WHEN home_score IS NOT NULL THEN 'FINISHED' ELSE 'SCHEDULED' END,
	home_team_id, away_team_id
FROM matches;

INSERT OR IGNORE INTO football_stats (event_id, home_score, away_score, xg_home, xg_away, referee)
SELECT id, home_score, away_score, xg_home, xg_away, referee
FROM matches
WHERE home_score IS NOT NULL;

ALTER TABLE matches RENAME TO _matches_v1_backup;
`

// InitSchema creates all tables, seeds the sports dimension and, when a
// legacy single-table database is detected, migrates it in one transaction.
func InitSchema(ctx context.Context, db *sqlx.DB, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return persistErr(err, "create schema")
	}

	var legacyTables int
	err := db.GetContext(ctx, &legacyTables,
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='matches'`)
	if err != nil {
		return persistErr(err, "detect legacy schema")
	}
	if legacyTables == 0 {
		return nil
	}

	logger.InfoContext(ctx, "legacy matches table detected, migrating")

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return persistErr(err, "begin legacy migration")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, legacyMigrationSQL); err != nil {
		return persistErr(err, "migrate legacy matches")
	}
	if err := tx.Commit(); err != nil {
		return persistErr(err, "commit legacy migration")
	}

	logger.InfoContext(ctx, "legacy migration complete")
	return nil
}
