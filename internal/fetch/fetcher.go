package fetch

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/avezquez/matchscout/internal/platform/logging"
	"github.com/avezquez/matchscout/internal/platform/resilience"
)

var (
	// ErrFetchFailed is the single error callers see when every transport
	// tier failed; the wrapped chain carries the last diagnostic reason.
	ErrFetchFailed = crerr.New("fetch failed")

	// ErrTimeoutWaitingForContent means the interstitial never cleared
	// within the polling budget of the browser tier.
	ErrTimeoutWaitingForContent = crerr.New("timeout waiting for content")
)

// challengeMarkers flag an interstitial bot-check page served in place of
// real content. A 2xx body containing one of these is not a success.
var challengeMarkers = []string{
	"Just a moment...",
	"Enable JavaScript",
	"running directly",
}

func looksLikeChallenge(body string) bool {
	for _, marker := range challengeMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

// Fetcher retrieves the raw HTML document behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Chain tries each strategy in order and short-circuits on the first
// success. Concurrent fetches of the same URL share one in-flight call.
type Chain struct {
	strategies []Fetcher
	logger     *logging.Logger
	flight     resilience.SingleFlight
}

func NewChain(logger *logging.Logger, strategies ...Fetcher) *Chain {
	if logger == nil {
		logger = logging.Default()
	}
	return &Chain{strategies: strategies, logger: logger}
}

func (c *Chain) Fetch(ctx context.Context, url string) (string, error) {
	val, err, shared := c.flight.Do(url, func() (any, error) {
		return c.fetch(ctx, url)
	})
	if shared {
		c.logger.DebugContext(ctx, "fetch joined in-flight request", "url", url)
	}
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

func (c *Chain) fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for _, strategy := range c.strategies {
		html, err := strategy.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
		c.logger.WarnContext(ctx, "fetch strategy failed, trying next", "url", url, "error", err)
	}

	if lastErr == nil {
		return "", crerr.Mark(crerr.Newf("no fetch strategies configured for %s", url), ErrFetchFailed)
	}
	return "", crerr.Mark(crerr.Wrapf(lastErr, "all fetch strategies failed for %s", url), ErrFetchFailed)
}
