package matchstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialSetGetCreatesOnce(t *testing.T) {
	t.Parallel()

	set := PartialSet{}
	first := set.Get("Saka")
	first.Goals = 2

	again := set.Get("Saka")
	assert.Same(t, first, again)
	assert.Equal(t, 2, again.Goals)
	assert.Len(t, set, 1)
}

func TestAggregateSumsPlayers(t *testing.T) {
	t.Parallel()

	set := PartialSet{}
	a := set.Get("Saka")
	a.Position = "RW"
	a.Minutes = 90
	a.XG = 0.8
	a.Shots = 4
	a.ShotsOnTarget = 2
	a.Goals = 1
	a.SCA = 3
	a.TacklesWon = 1
	a.YellowCards = 1
	a.Corners = 5

	b := set.Get("Rice")
	b.Position = "DM"
	b.Minutes = 88
	b.XG = 0.1
	b.Shots = 1
	b.Interceptions = 4
	b.AerialsWon = 3
	b.PassesCompleted = 70

	ts := Aggregate(set, "Arsenal")

	assert.Equal(t, "Arsenal", ts.Name)
	assert.InDelta(t, 0.9, ts.XG, 1e-9)
	assert.Equal(t, 5, ts.Shots)
	assert.Equal(t, 2, ts.ShotsOnTarget)
	assert.Equal(t, 1, ts.Goals)
	assert.Equal(t, 3, ts.SCA)
	assert.Equal(t, 1, ts.TacklesWon)
	assert.Equal(t, 4, ts.Interceptions)
	assert.Equal(t, 3, ts.AerialsWon)
	assert.Equal(t, 70, ts.PassesCompleted)
	assert.Equal(t, 1, ts.YellowCards)
	assert.Equal(t, 5, ts.Corners)

	require.Len(t, ts.Players, 2)
	names := []string{ts.Players[0].Name, ts.Players[1].Name}
	assert.ElementsMatch(t, []string{"Saka", "Rice"}, names)
}

func TestBuildCrossAssignsXGAgainst(t *testing.T) {
	t.Parallel()

	home := PartialSet{}
	home.Get("H1").XG = 1.4
	away := PartialSet{}
	away.Get("A1").XG = 0.6

	attendance := 60000
	stats := Build(MatchContext{
		Referee:    "Michael Oliver",
		Venue:      "Emirates Stadium",
		Attendance: &attendance,
	}, "Arsenal", "Chelsea", home, away)

	assert.Equal(t, "Arsenal", stats.Home.Name)
	assert.Equal(t, "Chelsea", stats.Away.Name)
	assert.InDelta(t, 0.6, stats.Home.XGAgainst, 1e-9)
	assert.InDelta(t, 1.4, stats.Away.XGAgainst, 1e-9)
	assert.Equal(t, "Emirates Stadium", stats.Context.Venue)
	require.NotNil(t, stats.Context.Attendance)
	assert.Equal(t, 60000, *stats.Context.Attendance)
}
