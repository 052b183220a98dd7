package fetch

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/avezquez/matchscout/internal/platform/logging"
	"github.com/avezquez/matchscout/internal/platform/resilience"
	"github.com/avezquez/matchscout/internal/usecase"
)

// SolverConfig tunes the FlareSolverr tier.
type SolverConfig struct {
	// Endpoint is the base URL of the local FlareSolverr sidecar,
	// e.g. http://127.0.0.1:8191.
	Endpoint string
	// ProbeTimeout bounds the cheap liveness probe before each solve.
	ProbeTimeout time.Duration
	// SolveTimeout bounds the whole solve round trip.
	SolveTimeout time.Duration
	// MaxTimeoutMS is the per-request budget handed to the sidecar,
	// kept below SolveTimeout so the sidecar gives up first.
	MaxTimeoutMS int

	Circuit resilience.CircuitBreakerConfig
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Endpoint:     "http://127.0.0.1:8191",
		ProbeTimeout: 2 * time.Second,
		SolveTimeout: 60 * time.Second,
		MaxTimeoutMS: 55000,
		Circuit:      resilience.DefaultCircuitBreakerConfig(),
	}
}

type solveRequest struct {
	Cmd        string `json:"cmd"`
	URL        string `json:"url"`
	MaxTimeout int    `json:"maxTimeout"`
}

type solveResponse struct {
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Solution *solveSolution `json:"solution"`
}

type solveSolution struct {
	URL      string `json:"url"`
	Status   int    `json:"status"`
	Response string `json:"response"`
}

// Solver delegates a fetch to a FlareSolverr sidecar, which drives a
// real browser through the origin's challenge. A circuit breaker keeps
// a dead sidecar from adding a minute of latency to every fetch.
type Solver struct {
	cfg     SolverConfig
	client  *resty.Client
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewSolver(cfg SolverConfig, logger *logging.Logger) *Solver {
	def := DefaultSolverConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = def.ProbeTimeout
	}
	if cfg.SolveTimeout <= 0 {
		cfg.SolveTimeout = def.SolveTimeout
	}
	if cfg.MaxTimeoutMS <= 0 {
		cfg.MaxTimeoutMS = def.MaxTimeoutMS
	}
	if cfg.Circuit == (resilience.CircuitBreakerConfig{}) {
		cfg.Circuit = def.Circuit
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Solver{
		cfg:     cfg,
		client:  resty.New().SetBaseURL(cfg.Endpoint),
		breaker: resilience.NewCircuitBreaker(cfg.Circuit),
		logger:  logger,
	}
}

func (s *Solver) Fetch(ctx context.Context, url string) (string, error) {
	if err := s.breaker.Allow(); err != nil {
		s.logger.WarnContext(ctx, "flaresolverr circuit breaker rejected request", "state", s.breaker.State())
		return "", crerr.Mark(crerr.Wrap(err, "flaresolverr"), usecase.ErrDependencyUnavailable)
	}

	if err := s.probe(ctx); err != nil {
		s.breaker.RecordFailure()
		return "", crerr.Wrap(err, "flaresolverr not reachable")
	}

	body, err := sonic.Marshal(solveRequest{
		Cmd:        "request.get",
		URL:        url,
		MaxTimeout: s.cfg.MaxTimeoutMS,
	})
	if err != nil {
		return "", crerr.Wrap(err, "encode solve request")
	}

	solveCtx, cancel := context.WithTimeout(ctx, s.cfg.SolveTimeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(solveCtx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/v1")
	if err != nil {
		s.breaker.RecordFailure()
		return "", crerr.Wrapf(err, "solve request for %s", url)
	}

	var solved solveResponse
	if err := sonic.Unmarshal(resp.Body(), &solved); err != nil {
		s.breaker.RecordFailure()
		return "", crerr.Wrapf(err, "decode solve response for %s", url)
	}
	if solved.Status != "ok" || solved.Solution == nil {
		s.breaker.RecordFailure()
		return "", crerr.Newf("solve for %s: status %q: %s", url, solved.Status, solved.Message)
	}

	s.breaker.RecordSuccess()
	s.logger.DebugContext(ctx, "flaresolverr solved page", "url", url, "upstream_status", solved.Solution.Status)
	return solved.Solution.Response, nil
}

// probe checks that the sidecar answers at all before committing to a
// solve that can legitimately take close to a minute.
func (s *Solver) probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	defer cancel()

	resp, err := s.client.R().SetContext(probeCtx).Get("/")
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 500 {
		return crerr.Newf("liveness probe: status %d", resp.StatusCode())
	}
	return nil
}
