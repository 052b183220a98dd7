package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avezquez/matchscout/internal/domain/sport"
	"github.com/avezquez/matchscout/internal/domain/team"
	qb "github.com/avezquez/matchscout/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Upsert(ctx context.Context, name, url string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, persistErr(err, "begin team upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	id, err := upsertTeamTx(ctx, tx, name, url)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, persistErr(err, "commit team upsert")
	}
	return id, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("id", "sport_id", "name", "url").
		From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, persistErr(err, "build get team query")
	}

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, persistErr(err, "get team")
	}

	return team.Team{
		ID:      row.ID,
		SportID: row.SportID,
		Name:    row.Name,
		URL:     row.URL.String,
	}, true, nil
}

// upsertTeamTx resolves a team id by (sport, name), inserting on first
// sight. A non-empty URL overwrites the stored one, last write wins; an
// empty URL never clears a known one.
func upsertTeamTx(ctx context.Context, tx *sqlx.Tx, name, url string) (int64, error) {
	candidate := team.Team{SportID: sport.FootballID, Name: name, URL: url}
	if err := candidate.Validate(); err != nil {
		return 0, fmt.Errorf("validate team: %w", err)
	}

	query, args, err := qb.Select("id", "sport_id", "name", "url").
		From("teams").
		Where(qb.Eq("sport_id", sport.FootballID), qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return 0, persistErr(err, "build find team query")
	}

	var existing teamRow
	err = tx.GetContext(ctx, &existing, query, args...)
	switch {
	case err == nil:
		if url != "" && url != existing.URL.String {
			update, uargs, err := qb.Update("teams").
				Set("url", url).
				Where(qb.Eq("id", existing.ID)).
				ToSQL()
			if err != nil {
				return 0, persistErr(err, "build update team url query")
			}
			if _, err := tx.ExecContext(ctx, update, uargs...); err != nil {
				return 0, persistErr(err, "update team url")
			}
		}
		return existing.ID, nil

	case isNotFound(err):
		insert, iargs, err := qb.InsertInto("teams").
			Columns("sport_id", "name", "url").
			Values(sport.FootballID, name, nullableString(url)).
			ToSQL()
		if err != nil {
			return 0, persistErr(err, "build insert team query")
		}
		res, err := tx.ExecContext(ctx, insert, iargs...)
		if err != nil {
			return 0, persistErr(err, "insert team")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, persistErr(err, "read inserted team id")
		}
		return id, nil

	default:
		return 0, persistErr(err, "find team")
	}
}
