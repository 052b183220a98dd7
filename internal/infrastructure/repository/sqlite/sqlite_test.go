package sqlite

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(context.Background(), db, logging.NewNop()))
	return db
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, InitSchema(context.Background(), db, logging.NewNop()))

	var sports int
	require.NoError(t, db.Get(&sports, "SELECT COUNT(*) FROM sports WHERE id = 'football'"))
	require.Equal(t, 1, sports)
}

func TestLegacyMigration(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()

	// pre-split database: sports/teams dimensions plus a single matches
	// table carrying both schedule and result columns
	_, err = db.ExecContext(ctx, `
		CREATE TABLE sports (id TEXT PRIMARY KEY, name TEXT NOT NULL);
		INSERT INTO sports VALUES ('football', 'Football');
		CREATE TABLE teams (
			id INTEGER PRIMARY KEY,
			sport_id TEXT DEFAULT 'football' REFERENCES sports(id),
			name TEXT NOT NULL,
			url TEXT,
			UNIQUE(sport_id, name)
		);
		INSERT INTO teams (id, name) VALUES (10, 'Arsenal'), (11, 'Chelsea'), (12, 'Everton');
		CREATE TABLE matches (
			id INTEGER PRIMARY KEY,
			date TEXT, time TEXT, venue TEXT, url TEXT,
			home_team_id INTEGER, away_team_id INTEGER,
			home_score INTEGER, away_score INTEGER,
			xg_home REAL, xg_away REAL, referee TEXT
		);
		INSERT INTO matches VALUES
			(1, '2025-05-01', '20:00', 'Old Ground', 'https://x/m1', 10, 11, 2, 1, 1.8, 0.9, 'R. Smith'),
			(2, '2025-05-08', '15:00', 'Old Ground', 'https://x/m2', 10, 12, NULL, NULL, NULL, NULL, NULL);
	`)
	require.NoError(t, err)

	require.NoError(t, InitSchema(ctx, db, logging.NewNop()))

	require.Equal(t, 2, countRows(t, db, "events"))
	// only the played match gets a stats row; absence still means no result
	require.Equal(t, 1, countRows(t, db, "football_stats"))
	require.Equal(t, 1, countRows(t, db, "_matches_v1_backup WHERE home_score IS NOT NULL"))

	var status string
	require.NoError(t, db.Get(&status, "SELECT status FROM events WHERE id = 1"))
	require.Equal(t, "FINISHED", status)
	require.NoError(t, db.Get(&status, "SELECT status FROM events WHERE id = 2"))
	require.Equal(t, "SCHEDULED", status)

	// re-running init must not migrate twice
	require.NoError(t, InitSchema(ctx, db, logging.NewNop()))
	require.Equal(t, 2, countRows(t, db, "events"))
}
