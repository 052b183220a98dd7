package httpapi

import (
	"github.com/avezquez/matchscout/internal/domain/event"
	"github.com/avezquez/matchscout/internal/domain/prediction"
	"github.com/avezquez/matchscout/internal/domain/team"
)

type matchPreviewDTO struct {
	ID       int64    `json:"id"`
	Date     string   `json:"date"`
	Time     string   `json:"time,omitempty"`
	HomeTeam string   `json:"home_team"`
	AwayTeam string   `json:"away_team"`
	Score    string   `json:"score"`
	Status   string   `json:"status"`
	Venue    string   `json:"venue,omitempty"`
	XGHome   *float64 `json:"xg_home,omitempty"`
	XGAway   *float64 `json:"xg_away,omitempty"`
}

func toMatchPreviewDTO(p event.Preview) matchPreviewDTO {
	return matchPreviewDTO{
		ID:       p.ID,
		Date:     p.Date,
		Time:     p.Time,
		HomeTeam: p.HomeTeam,
		AwayTeam: p.AwayTeam,
		Score:    p.Score,
		Status:   p.Status,
		Venue:    p.Venue,
		XGHome:   p.XGHome,
		XGAway:   p.XGAway,
	}
}

func toMatchPreviewDTOs(previews []event.Preview) []matchPreviewDTO {
	out := make([]matchPreviewDTO, 0, len(previews))
	for _, p := range previews {
		out = append(out, toMatchPreviewDTO(p))
	}
	return out
}

type predictionDTO struct {
	XGHome     float64 `json:"xg_home"`
	XGAway     float64 `json:"xg_away"`
	WinProb    float64 `json:"win_prob"`
	DrawProb   float64 `json:"draw_prob"`
	LoseProb   float64 `json:"lose_prob"`
	Over25Prob float64 `json:"over_2_5_prob"`
	BTTSProb   float64 `json:"btts_prob"`
}

func toPredictionDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		XGHome:     p.XGHome,
		XGAway:     p.XGAway,
		WinProb:    p.WinProb,
		DrawProb:   p.DrawProb,
		LoseProb:   p.LoseProb,
		Over25Prob: p.Over25Prob,
		BTTSProb:   p.BTTSProb,
	}
}

type teamSourceDTO struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	BaseURL string `json:"base_url"`
}

func toTeamSourceDTOs(teams []team.Source) []teamSourceDTO {
	out := make([]teamSourceDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamSourceDTO{Name: t.Name, ID: t.ID, BaseURL: t.BaseURL})
	}
	return out
}
