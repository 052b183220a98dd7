package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/avezquez/matchscout/internal/platform/logging"
	"github.com/avezquez/matchscout/internal/usecase"
)

type Handler struct {
	crawl       *usecase.CrawlService
	matches     *usecase.MatchService
	predictions *usecase.PredictionService
	logger      *logging.Logger
}

func NewHandler(
	crawl *usecase.CrawlService,
	matches *usecase.MatchService,
	predictions *usecase.PredictionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		crawl:       crawl,
		matches:     matches,
		predictions: predictions,
		logger:      logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

type syncFixturesRequest struct {
	LeagueURL string `json:"league_url"`
}

// SyncFixtures handles POST /v1/fixtures/sync.
func (h *Handler) SyncFixtures(w http.ResponseWriter, r *http.Request) {
	var req syncFixturesRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	saved, err := h.crawl.SyncFixtures(r.Context(), req.LeagueURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int{"saved": saved})
}

// DiscoverTeams handles GET /v1/teams?league_url=...
func (h *Handler) DiscoverTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.crawl.LeagueTeams(r.Context(), r.URL.Query().Get("league_url"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toTeamSourceDTOs(teams))
}

// ListMatches handles GET /v1/matches.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	previews, err := h.matches.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toMatchPreviewDTOs(previews))
}

// GetMatch handles GET /v1/matches/{matchID}.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "matchID")
	if err != nil {
		writeError(w, err)
		return
	}

	preview, err := h.matches.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toMatchPreviewDTO(preview))
}

// BackfillMatch handles POST /v1/matches/{matchID}/backfill.
func (h *Handler) BackfillMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "matchID")
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.crawl.BackfillEvent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, report)
}

// GetPrediction handles GET /v1/matches/{matchID}/prediction.
func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "matchID")
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.predictions.PredictEvent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toPredictionDTO(p))
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}
