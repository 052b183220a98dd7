package event

import (
	"context"

	"github.com/avezquez/matchscout/internal/domain/matchstats"
)

// Repository owns event persistence. Every write runs inside one transaction.
type Repository interface {
	// SaveFixture resolves both teams (writing their URLs), then upserts the
	// event by URL. A FINISHED event is never overwritten by fixture data.
	SaveFixture(ctx context.Context, f Fixture) error

	// SaveMatchComplete resolves both teams and upserts the event by URL as
	// FINISHED, attaching the result row and per-player fact rows. If a
	// result row already exists for the event the call is a no-op, which
	// keeps re-runs from duplicating player facts.
	SaveMatchComplete(ctx context.Context, stats matchstats.MatchStats, date, url string) error

	// HasCompletedStats reports whether an event with this URL exists and
	// already has a result row attached. This is the crawl dedup boundary.
	HasCompletedStats(ctx context.Context, url string) (bool, error)

	GetByID(ctx context.Context, id int64) (Event, bool, error)

	// TeamURLs returns the stored profile URLs of an event's two teams.
	TeamURLs(ctx context.Context, id int64) (home string, away string, err error)

	List(ctx context.Context) ([]Preview, error)
	GetPreview(ctx context.Context, id int64) (Preview, bool, error)
}
