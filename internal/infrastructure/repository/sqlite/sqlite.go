// Package sqlite implements the domain repositories on an embedded sqlite
// database. All multi-row writes run inside a single transaction; unique
// constraints on (sport, team name), event URL and player name arbitrate
// concurrent writers.
package sqlite

import (
	"database/sql"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrPersistenceFailed marks storage-layer failures so callers can tell
// them apart from fetch or extraction problems.
var ErrPersistenceFailed = crerr.New("persistence failed")

// Open connects to the database file, creating it when absent. A single
// connection serializes writers; sqlite allows only one anyway and this
// avoids SQLITE_BUSY churn under concurrent use.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path+"?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, crerr.Wrapf(err, "open sqlite database %s", path)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

func persistErr(err error, op string) error {
	return crerr.Mark(crerr.Wrap(err, op), ErrPersistenceFailed)
}
