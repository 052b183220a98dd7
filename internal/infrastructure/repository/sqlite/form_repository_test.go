package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezquez/matchscout/internal/domain/matchstats"
)

// seedFinishedMatch stores one finished match between the two named teams.
func seedFinishedMatch(t *testing.T, repo *EventRepository, date, home, away string, homeGoals, awayGoals int) {
	t.Helper()

	stats := matchstats.MatchStats{
		Home: matchstats.TeamStats{Name: home, Goals: homeGoals},
		Away: matchstats.TeamStats{Name: away, Goals: awayGoals},
	}
	url := fmt.Sprintf("https://fbref.com/en/matches/%s-%s-%s", date, home, away)
	require.NoError(t, repo.SaveMatchComplete(context.Background(), stats, date, url))
}

func TestLeagueAveragesEmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	repo := NewFormRepository(db)

	avgs, err := repo.LeagueAverages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, avgs.Matches)
}

func TestLeagueAverages(t *testing.T) {
	db := openTestDB(t)
	events := NewEventRepository(db)
	repo := NewFormRepository(db)

	seedFinishedMatch(t, events, "2026-08-01", "Arsenal", "Chelsea", 3, 1)
	seedFinishedMatch(t, events, "2026-08-08", "Chelsea", "Everton", 1, 1)

	avgs, err := repo.LeagueAverages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, avgs.Matches)
	assert.InDelta(t, 2.0, avgs.HomeAvg, 1e-9)
	assert.InDelta(t, 1.0, avgs.AwayAvg, 1e-9)
}

func TestTeamFormCountsBothSides(t *testing.T) {
	db := openTestDB(t)
	events := NewEventRepository(db)
	repo := NewFormRepository(db)
	ctx := context.Background()

	seedFinishedMatch(t, events, "2026-08-01", "Arsenal", "Chelsea", 3, 1)
	seedFinishedMatch(t, events, "2026-08-08", "Everton", "Arsenal", 0, 2)

	teams := NewTeamRepository(db)
	arsenalID, err := teams.Upsert(ctx, "Arsenal", "")
	require.NoError(t, err)

	form, err := repo.TeamForm(ctx, arsenalID, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, form.Matches)
	assert.InDelta(t, 2.5, form.ScoredAvg, 1e-9)
	assert.InDelta(t, 0.5, form.ConcededAvg, 1e-9)
}

func TestTeamFormWindowKeepsNewestMatches(t *testing.T) {
	db := openTestDB(t)
	events := NewEventRepository(db)
	repo := NewFormRepository(db)
	ctx := context.Background()

	// oldest match is a blowout; a window of 2 must exclude it
	seedFinishedMatch(t, events, "2026-07-01", "Arsenal", "Chelsea", 9, 0)
	seedFinishedMatch(t, events, "2026-08-01", "Arsenal", "Everton", 1, 0)
	seedFinishedMatch(t, events, "2026-08-08", "Fulham", "Arsenal", 0, 1)

	teams := NewTeamRepository(db)
	arsenalID, err := teams.Upsert(ctx, "Arsenal", "")
	require.NoError(t, err)

	form, err := repo.TeamForm(ctx, arsenalID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, form.Matches)
	assert.InDelta(t, 1.0, form.ScoredAvg, 1e-9)
}

func TestTeamFormNoHistory(t *testing.T) {
	db := openTestDB(t)
	repo := NewFormRepository(db)
	teams := NewTeamRepository(db)
	ctx := context.Background()

	id, err := teams.Upsert(ctx, "Newly Promoted", "")
	require.NoError(t, err)

	form, err := repo.TeamForm(ctx, id, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, form.Matches)
}
