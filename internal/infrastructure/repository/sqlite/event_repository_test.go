package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezquez/matchscout/internal/domain/event"
	"github.com/avezquez/matchscout/internal/domain/matchstats"
)

func testFixture() event.Fixture {
	return event.Fixture{
		Date:     "2026-09-01",
		Time:     "17:30",
		Venue:    "Anfield",
		HomeTeam: "Liverpool",
		AwayTeam: "Everton",
		HomeURL:  "https://fbref.com/en/squads/ccc333/",
		AwayURL:  "https://fbref.com/en/squads/ddd444/",
		URL:      "https://fbref.com/en/matches/y2",
	}
}

func testMatchStats() matchstats.MatchStats {
	attendance := 53000
	return matchstats.MatchStats{
		Context: matchstats.MatchContext{
			Referee:    "R. Smith",
			Venue:      "Anfield",
			Attendance: &attendance,
		},
		Home: matchstats.TeamStats{
			Name: "Liverpool", Goals: 2, XG: 1.9,
			Players: []matchstats.PlayerStats{
				{Name: "Salah", Position: "RW", Minutes: 90, Goals: 1, XG: 0.9},
				{Name: "Szoboszlai", Position: "AM", Minutes: 88, Goals: 1, XG: 0.6},
			},
		},
		Away: matchstats.TeamStats{
			Name: "Everton", Goals: 0, XG: 0.4,
			Players: []matchstats.PlayerStats{
				{Name: "Pickford", Position: "GK", Minutes: 90},
			},
		},
	}
}

func TestSaveFixtureCreatesTeamsAndEvent(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveFixture(ctx, testFixture()))

	assert.Equal(t, 2, countRows(t, db, "teams"))
	assert.Equal(t, 1, countRows(t, db, "events"))

	var status string
	require.NoError(t, db.Get(&status, "SELECT status FROM events"))
	assert.Equal(t, event.StatusScheduled, status)
}

func TestSaveFixtureIsIdempotentByURL(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	f := testFixture()
	require.NoError(t, repo.SaveFixture(ctx, f))

	f.Venue = "Goodison Park"
	require.NoError(t, repo.SaveFixture(ctx, f))

	assert.Equal(t, 1, countRows(t, db, "events"))

	var venue string
	require.NoError(t, db.Get(&venue, "SELECT venue FROM events"))
	assert.Equal(t, "Goodison Park", venue, "scheduled event details refresh in place")
}

func TestSaveFixtureNeverDowngradesFinishedEvent(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	f := testFixture()
	require.NoError(t, repo.SaveMatchComplete(ctx, testMatchStats(), "2026-09-01", f.URL))

	f.Date = "2026-09-09"
	require.NoError(t, repo.SaveFixture(ctx, f))

	var row struct {
		Date   string `db:"date"`
		Status string `db:"status"`
	}
	require.NoError(t, db.Get(&row, "SELECT date, status FROM events"))
	assert.Equal(t, event.StatusFinished, row.Status)
	assert.Equal(t, "2026-09-01", row.Date)
}

func TestSaveMatchCompletePersistsResultAndPlayers(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	url := "https://fbref.com/en/matches/y2"
	require.NoError(t, repo.SaveMatchComplete(ctx, testMatchStats(), "2026-09-01", url))

	assert.Equal(t, 1, countRows(t, db, "football_stats"))
	assert.Equal(t, 3, countRows(t, db, "players"))
	assert.Equal(t, 3, countRows(t, db, "player_match_stats"))

	var attendance int
	require.NoError(t, db.Get(&attendance, "SELECT attendance FROM football_stats"))
	assert.Equal(t, 53000, attendance)

	has, err := repo.HasCompletedStats(ctx, url)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSaveMatchCompleteIsNoOpWhenStatsExist(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	url := "https://fbref.com/en/matches/y2"
	require.NoError(t, repo.SaveMatchComplete(ctx, testMatchStats(), "2026-09-01", url))
	require.NoError(t, repo.SaveMatchComplete(ctx, testMatchStats(), "2026-09-01", url))

	assert.Equal(t, 1, countRows(t, db, "football_stats"))
	assert.Equal(t, 3, countRows(t, db, "player_match_stats"), "re-scrape must not duplicate player facts")
}

func TestSaveMatchCompleteFlipsScheduledEvent(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	f := testFixture()
	require.NoError(t, repo.SaveFixture(ctx, f))
	require.NoError(t, repo.SaveMatchComplete(ctx, testMatchStats(), "2026-09-01", f.URL))

	assert.Equal(t, 1, countRows(t, db, "events"))
	assert.Equal(t, 2, countRows(t, db, "teams"), "same teams resolve by name, no duplicates")

	var status string
	require.NoError(t, db.Get(&status, "SELECT status FROM events"))
	assert.Equal(t, event.StatusFinished, status)

	// fixture-sourced team URL must survive the result write
	var url string
	require.NoError(t, db.Get(&url, "SELECT url FROM teams WHERE name = 'Liverpool'"))
	assert.Equal(t, "https://fbref.com/en/squads/ccc333/", url)
}

func TestSaveMatchCompleteRepointsTeamsOnNameMismatch(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	f := testFixture()
	require.NoError(t, repo.SaveFixture(ctx, f))

	// the scorebox spells the home side differently than the schedule did
	stats := testMatchStats()
	stats.Home.Name = "Liverpool FC"
	require.NoError(t, repo.SaveMatchComplete(ctx, stats, "2026-09-01", f.URL))

	var resolvedID int64
	require.NoError(t, db.Get(&resolvedID, "SELECT id FROM teams WHERE name = 'Liverpool FC'"))

	var homeTeamID int64
	require.NoError(t, db.Get(&homeTeamID, "SELECT home_team_id FROM events WHERE url = ?", f.URL))
	assert.Equal(t, resolvedID, homeTeamID, "event must reference the team its player rows key off")

	var playerTeams int
	require.NoError(t, db.Get(&playerTeams,
		"SELECT COUNT(*) FROM player_match_stats WHERE team_id = ?", resolvedID))
	assert.Equal(t, 2, playerTeams)
}

func TestListAndPreview(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveFixture(ctx, testFixture()))
	require.NoError(t, repo.SaveMatchComplete(ctx, testMatchStats(), "2026-08-20", "https://fbref.com/en/matches/x1"))

	previews, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, previews, 2)

	assert.Equal(t, "vs", previews[0].Score, "scheduled match has no score")
	assert.Equal(t, "2-0", previews[1].Score)
	require.NotNil(t, previews[1].XGHome)
	assert.InDelta(t, 1.9, *previews[1].XGHome, 1e-9)

	got, found, err := repo.GetPreview(ctx, previews[1].ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Liverpool", got.HomeTeam)

	_, found, err = repo.GetPreview(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTeamURLs(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveFixture(ctx, testFixture()))

	previews, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, previews, 1)

	home, away, err := repo.TeamURLs(ctx, previews[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "https://fbref.com/en/squads/ccc333/", home)
	assert.Equal(t, "https://fbref.com/en/squads/ddd444/", away)
}
