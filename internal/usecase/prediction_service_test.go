package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezquez/matchscout/internal/domain/event"
	"github.com/avezquez/matchscout/internal/domain/matchstats"
	"github.com/avezquez/matchscout/internal/domain/prediction"
)

type stubFormRepo struct {
	league prediction.LeagueAverages
	forms  map[int64]prediction.TeamForm
}

func (s *stubFormRepo) LeagueAverages(context.Context) (prediction.LeagueAverages, error) {
	return s.league, nil
}

func (s *stubFormRepo) TeamForm(_ context.Context, teamID int64, _ int) (prediction.TeamForm, error) {
	return s.forms[teamID], nil
}

type stubEventRepo struct {
	events map[int64]event.Event
}

func (s *stubEventRepo) SaveFixture(context.Context, event.Fixture) error { return nil }
func (s *stubEventRepo) SaveMatchComplete(context.Context, matchstats.MatchStats, string, string) error {
	return nil
}
func (s *stubEventRepo) HasCompletedStats(context.Context, string) (bool, error) { return false, nil }
func (s *stubEventRepo) GetByID(_ context.Context, id int64) (event.Event, bool, error) {
	ev, ok := s.events[id]
	return ev, ok, nil
}
func (s *stubEventRepo) TeamURLs(context.Context, int64) (string, string, error) { return "", "", nil }
func (s *stubEventRepo) List(context.Context) ([]event.Preview, error)           { return nil, nil }
func (s *stubEventRepo) GetPreview(context.Context, int64) (event.Preview, bool, error) {
	return event.Preview{}, false, nil
}

func TestPredictProbabilitiesAreCoherent(t *testing.T) {
	t.Parallel()

	form := &stubFormRepo{
		league: prediction.LeagueAverages{Matches: 100, HomeAvg: 1.5, AwayAvg: 1.1},
		forms: map[int64]prediction.TeamForm{
			1: {Matches: 20, ScoredAvg: 2.1, ConcededAvg: 0.8},
			2: {Matches: 20, ScoredAvg: 1.0, ConcededAvg: 1.6},
		},
	}
	svc := NewPredictionService(&stubEventRepo{}, form)

	p, err := svc.Predict(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, p.WinProb+p.DrawProb+p.LoseProb, 1e-9, "1X2 renormalizes to one")
	assert.Greater(t, p.WinProb, p.LoseProb, "stronger home side must be favored")
	assert.Greater(t, p.XGHome, p.XGAway)
	assert.Greater(t, p.Over25Prob, 0.0)
	assert.Less(t, p.Over25Prob, 1.0)
	assert.Greater(t, p.BTTSProb, 0.0)
	assert.Less(t, p.BTTSProb, 1.0)
}

func TestPredictUsesPriorsOnEmptyLeague(t *testing.T) {
	t.Parallel()

	form := &stubFormRepo{
		league: prediction.LeagueAverages{Matches: 0},
		forms: map[int64]prediction.TeamForm{
			1: {Matches: 5, ScoredAvg: 1.5, ConcededAvg: 1.2},
			2: {Matches: 5, ScoredAvg: 1.2, ConcededAvg: 1.5},
		},
	}
	svc := NewPredictionService(&stubEventRepo{}, form)

	p, err := svc.Predict(context.Background(), 1, 2)
	require.NoError(t, err)

	// form exactly matching the priors gives neutral strength ratios
	assert.InDelta(t, 1.5, p.XGHome, 1e-9)
	assert.InDelta(t, 1.2, p.XGAway, 1e-9)
}

func TestPredictInsufficientHistory(t *testing.T) {
	t.Parallel()

	form := &stubFormRepo{
		league: prediction.LeagueAverages{Matches: 50, HomeAvg: 1.4, AwayAvg: 1.1},
		forms: map[int64]prediction.TeamForm{
			1: {Matches: 20, ScoredAvg: 1.5, ConcededAvg: 1.0},
			// team 2 newly promoted, zero finished matches
		},
	}
	svc := NewPredictionService(&stubEventRepo{}, form)

	_, err := svc.Predict(context.Background(), 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestPredictEventNotFound(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(&stubEventRepo{}, &stubFormRepo{})

	_, err := svc.PredictEvent(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPoissonPMF(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, poissonPMF(0, 0), 1e-12)
	assert.InDelta(t, 0.0, poissonPMF(3, 0), 1e-12)

	// distribution sums to ~1 over a generous grid
	sum := 0.0
	for k := 0; k <= 30; k++ {
		sum += poissonPMF(k, 2.7)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
