package httpapi

import (
	"net/http"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("POST /v1/fixtures/sync", handler.SyncFixtures)
	mux.HandleFunc("GET /v1/teams", handler.DiscoverTeams)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/backfill", handler.BackfillMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/prediction", handler.GetPrediction)

	return RequestLogging(logger, recoverPanic(logger, mux))
}
