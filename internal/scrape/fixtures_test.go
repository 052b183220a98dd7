package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

const scheduleHTML = `<html><body>
<table class="stats_table"><tbody>
<tr class="thead"><td data-stat="date">Date</td></tr>
<tr>
  <td data-stat="date"><a href="/en/matches/2026-08-20">2026-08-20</a></td>
  <td data-stat="start_time">20:00</td>
  <td data-stat="home_team"><a href="/en/squads/aaa111/Arsenal">Arsenal</a></td>
  <td data-stat="score">2&#8211;1</td>
  <td data-stat="away_team"><a href="/en/squads/bbb222/Chelsea">Chelsea</a></td>
  <td data-stat="venue">Emirates Stadium</td>
  <td data-stat="match_report"><a href="/en/matches/x1/report">Match Report</a></td>
</tr>
<tr>
  <td data-stat="date"><a href="/en/matches/2026-09-01">2026-09-01</a></td>
  <td data-stat="start_time">17:30</td>
  <td data-stat="home_team"><a href="/en/squads/ccc333/Liverpool">Liverpool</a></td>
  <td data-stat="score"><a href="/en/matches/y2/preview"></a></td>
  <td data-stat="away_team"><a href="/en/squads/ddd444/Everton">Everton</a></td>
  <td data-stat="venue">Anfield</td>
</tr>
<tr>
  <td data-stat="date"><a href="/en/matches/2026-09-10">2026-09-10</a></td>
  <td data-stat="start_time"></td>
  <td data-stat="home_team"><a href="/en/squads/eee555/Brighton">Brighton</a></td>
  <td data-stat="score"></td>
  <td data-stat="away_team"><a href="/en/squads/fff666/Fulham">Fulham</a></td>
  <td data-stat="venue"></td>
</tr>
<tr>
  <td data-stat="date"><a href="/en/matches/2026-12-25">2026-12-25</a></td>
  <td data-stat="home_team"><a href="/en/squads/ggg777/Wolves">Wolves</a></td>
  <td data-stat="score"></td>
  <td data-stat="away_team"><a href="/en/squads/hhh888/Burnley">Burnley</a></td>
</tr>
</tbody></table>
</body></html>`

func TestFixturesExtraction(t *testing.T) {
	t.Parallel()

	e := NewExtractor("https://fbref.com", logging.NewNop())
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	fixtures, err := e.Fixtures(scheduleHTML, now, 30)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	first := fixtures[0]
	assert.Equal(t, "2026-09-01", first.Date)
	assert.Equal(t, "17:30", first.Time)
	assert.Equal(t, "Liverpool", first.HomeTeam)
	assert.Equal(t, "Everton", first.AwayTeam)
	assert.Equal(t, "Anfield", first.Venue)
	assert.Equal(t, "https://fbref.com/en/squads/ccc333/Liverpool", first.HomeURL)
	assert.Equal(t, "https://fbref.com/en/matches/y2/preview", first.URL)

	second := fixtures[1]
	assert.Equal(t, "Unknown Venue", second.Venue)
	assert.Equal(t, "fixture://2026-09-10/Brighton/Fulham", second.URL)
}

func TestFixturesSkipsFinishedRows(t *testing.T) {
	t.Parallel()

	e := NewExtractor("https://fbref.com", logging.NewNop())
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	fixtures, err := e.Fixtures(scheduleHTML, now, 30)
	require.NoError(t, err)
	for _, f := range fixtures {
		assert.NotEqual(t, "Arsenal", f.HomeTeam, "finished match must be excluded")
	}
}

func TestFixturesStopsPastHorizon(t *testing.T) {
	t.Parallel()

	e := NewExtractor("https://fbref.com", logging.NewNop())
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	fixtures, err := e.Fixtures(scheduleHTML, now, 30)
	require.NoError(t, err)
	for _, f := range fixtures {
		assert.NotEqual(t, "2026-12-25", f.Date, "row past horizon must stop iteration")
	}
}

func TestFixturesEmptyDocument(t *testing.T) {
	t.Parallel()

	e := NewExtractor("https://fbref.com", logging.NewNop())
	fixtures, err := e.Fixtures("<html><body></body></html>", time.Now(), 30)
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}
