package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/avezquez/matchscout/internal/domain/event"
	"github.com/avezquez/matchscout/internal/domain/prediction"
)

// leagueHomePrior and leagueAwayPrior are typical football goal averages,
// used when the store holds no finished matches at all.
const (
	leagueHomePrior = 1.5
	leagueAwayPrior = 1.2

	// formWindow is the recent-match cap for team form.
	formWindow = 20

	// maxGoals bounds the score grid; probability mass above 9 goals a
	// side is negligible for football lambdas.
	maxGoals = 9
)

type PredictionService struct {
	events event.Repository
	form   prediction.Repository
}

func NewPredictionService(events event.Repository, form prediction.Repository) *PredictionService {
	return &PredictionService{events: events, form: form}
}

// PredictEvent produces the market probabilities for a stored match.
func (s *PredictionService) PredictEvent(ctx context.Context, eventID int64) (prediction.Prediction, error) {
	if eventID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: event id must be positive", ErrInvalidInput)
	}

	ev, found, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get event: %w", err)
	}
	if !found {
		return prediction.Prediction{}, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}

	return s.Predict(ctx, ev.HomeTeamID, ev.AwayTeamID)
}

// Predict runs the Poisson model for a home/away pairing. Teams with zero
// finished matches in the store yield ErrInsufficientHistory; the model
// refuses to guess rather than emit priors dressed up as analysis.
func (s *PredictionService) Predict(ctx context.Context, homeTeamID, awayTeamID int64) (prediction.Prediction, error) {
	league, err := s.form.LeagueAverages(ctx)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get league averages: %w", err)
	}

	leagueHomeAvg, leagueAwayAvg := league.HomeAvg, league.AwayAvg
	if league.Matches == 0 {
		leagueHomeAvg, leagueAwayAvg = leagueHomePrior, leagueAwayPrior
	}

	homeForm, err := s.teamForm(ctx, homeTeamID)
	if err != nil {
		return prediction.Prediction{}, err
	}
	awayForm, err := s.teamForm(ctx, awayTeamID)
	if err != nil {
		return prediction.Prediction{}, err
	}

	// attack/defence strength ratios against league baselines; a zero
	// baseline degrades the ratio to neutral 1.0
	homeAtt := ratio(homeForm.ScoredAvg, leagueHomeAvg)
	homeDef := ratio(homeForm.ConcededAvg, leagueAwayAvg)
	awayAtt := ratio(awayForm.ScoredAvg, leagueAwayAvg)
	awayDef := ratio(awayForm.ConcededAvg, leagueHomeAvg)

	xgHome := homeAtt * awayDef * leagueHomeAvg
	xgAway := awayAtt * homeDef * leagueAwayAvg

	p := prediction.Prediction{XGHome: xgHome, XGAway: xgAway}
	for homeGoals := 0; homeGoals <= maxGoals; homeGoals++ {
		pHome := poissonPMF(homeGoals, xgHome)
		for awayGoals := 0; awayGoals <= maxGoals; awayGoals++ {
			pScore := pHome * poissonPMF(awayGoals, xgAway)

			switch {
			case homeGoals > awayGoals:
				p.WinProb += pScore
			case homeGoals == awayGoals:
				p.DrawProb += pScore
			default:
				p.LoseProb += pScore
			}
			if homeGoals+awayGoals > 2 {
				p.Over25Prob += pScore
			}
			if homeGoals > 0 && awayGoals > 0 {
				p.BTTSProb += pScore
			}
		}
	}

	// renormalize 1X2 for the truncated grid; over/BTTS are independent
	// markets and stay raw
	if total := p.WinProb + p.DrawProb + p.LoseProb; total > 0 {
		p.WinProb /= total
		p.DrawProb /= total
		p.LoseProb /= total
	}

	return p, nil
}

func (s *PredictionService) teamForm(ctx context.Context, teamID int64) (prediction.TeamForm, error) {
	form, err := s.form.TeamForm(ctx, teamID, formWindow)
	if err != nil {
		return prediction.TeamForm{}, fmt.Errorf("get team form: %w", err)
	}
	if form.Matches == 0 {
		return prediction.TeamForm{}, fmt.Errorf("%w: team %d has no finished matches", ErrInsufficientHistory, teamID)
	}
	return form, nil
}

func ratio(value, baseline float64) float64 {
	if baseline <= 0 {
		return 1.0
	}
	return value / baseline
}

// poissonPMF computes P(X = k) for X ~ Poisson(lambda) in log space to
// stay stable for larger k.
func poissonPMF(k int, lambda float64) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}

	logP := float64(k)*math.Log(lambda) - lambda
	for i := 2; i <= k; i++ {
		logP -= math.Log(float64(i))
	}
	return math.Exp(logP)
}
