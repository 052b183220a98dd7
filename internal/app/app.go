package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avezquez/matchscout/internal/config"
	"github.com/avezquez/matchscout/internal/fetch"
	"github.com/avezquez/matchscout/internal/infrastructure/repository/sqlite"
	"github.com/avezquez/matchscout/internal/interfaces/httpapi"
	"github.com/avezquez/matchscout/internal/platform/logging"
	"github.com/avezquez/matchscout/internal/platform/resilience"
	"github.com/avezquez/matchscout/internal/scrape"
	"github.com/avezquez/matchscout/internal/usecase"
)

// NewHTTPServer wires the full service. The returned close function
// releases the database handle and must be called after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := sqlite.InitSchema(context.Background(), db, logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}

	eventRepo := sqlite.NewEventRepository(db)
	formRepo := sqlite.NewFormRepository(db)

	pages := fetch.NewChain(logger,
		fetch.NewDirect(cfg.DirectFetchTimeout, logger),
		fetch.NewSolver(fetch.SolverConfig{
			Endpoint:     cfg.SolverURL,
			ProbeTimeout: cfg.SolverProbeTimeout,
			SolveTimeout: cfg.SolverTimeout,
			MaxTimeoutMS: cfg.SolverMaxTimeoutMS,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SolverCircuitEnabled,
				FailureThreshold: cfg.SolverCircuitFailures,
				OpenTimeout:      cfg.SolverCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SolverCircuitHalfOpenMax,
			},
		}, logger),
	)
	reports := fetch.NewBrowser(fetch.BrowserConfig{
		UserAgent:    cfg.BrowserUserAgent,
		PollInterval: cfg.BrowserPollInterval,
		MaxAttempts:  cfg.BrowserPollAttempts,
		DumpPath:     cfg.BrowserDumpPath,
	}, logger)

	extractor := scrape.NewExtractor(cfg.SourceBaseURL, logger)

	crawlSvc := usecase.NewCrawlService(usecase.CrawlConfig{
		Seasons:      cfg.CrawlSeasons,
		DelayMin:     cfg.CrawlDelayMin,
		DelayMax:     cfg.CrawlDelayMax,
		HorizonDays:  cfg.FixtureHorizon,
		ReportMarker: cfg.ReportMarker,
	}, pages, reports, extractor, eventRepo, logger)
	matchSvc := usecase.NewMatchService(eventRepo)
	predictionSvc := usecase.NewPredictionService(eventRepo, formRepo)

	handler := httpapi.NewHandler(crawlSvc, matchSvc, predictionSvc, logger)
	router := httpapi.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db.Close, nil
}
