package fetch

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	crerr "github.com/cockroachdb/errors"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

// chromeMu serializes headless Chrome sessions; a single instance at a
// time keeps memory bounded and avoids profile-dir races.
var chromeMu sync.Mutex

const defaultBrowserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// BrowserConfig tunes the headless-browser tier.
type BrowserConfig struct {
	UserAgent    string
	PollInterval time.Duration
	MaxAttempts  int
	// DumpPath receives the final rendered HTML when polling times out,
	// for offline inspection of what the origin actually served.
	DumpPath string
}

func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		UserAgent:    defaultBrowserUA,
		PollInterval: 2 * time.Second,
		MaxAttempts:  15,
		DumpPath:     "debug_timeout.html",
	}
}

// Browser is the heaviest tier: it drives headless Chrome, lets the
// origin's JavaScript challenge run to completion, and polls the DOM
// until a caller-supplied marker selector appears.
type Browser struct {
	cfg    BrowserConfig
	logger *logging.Logger
}

func NewBrowser(cfg BrowserConfig, logger *logging.Logger) *Browser {
	def := DefaultBrowserConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Browser{cfg: cfg, logger: logger}
}

// FetchWait navigates to url and returns the rendered document once an
// element matching marker exists. It returns ErrTimeoutWaitingForContent
// when the marker never appears within the polling budget.
func (b *Browser) FetchWait(ctx context.Context, url, marker string) (string, error) {
	chromeMu.Lock()
	defer chromeMu.Unlock()

	profileDir, err := os.MkdirTemp("", "matchscout_chrome_")
	if err != nil {
		return "", crerr.Wrap(err, "create chrome profile dir")
	}
	defer os.RemoveAll(profileDir)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserDataDir(profileDir),
		chromedp.UserAgent(b.cfg.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		return "", crerr.Wrapf(err, "navigate to %s", url)
	}

	for attempt := 1; attempt <= b.cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", crerr.Wrapf(ctx.Err(), "wait for %q on %s", marker, url)
		case <-time.After(b.cfg.PollInterval):
		}

		var found bool
		err := chromedp.Run(browserCtx,
			chromedp.Evaluate("document.querySelector("+jsString(marker)+") !== null", &found),
		)
		if err != nil {
			return "", crerr.Wrapf(err, "poll for %q on %s", marker, url)
		}
		if !found {
			b.logger.DebugContext(ctx, "content marker not present yet",
				"url", url, "marker", marker, "attempt", attempt)
			continue
		}

		var html string
		if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html)); err != nil {
			return "", crerr.Wrapf(err, "capture document for %s", url)
		}
		return html, nil
	}

	b.dumpDocument(ctx, browserCtx, url)
	return "", crerr.Mark(
		crerr.Newf("marker %q never appeared on %s after %d attempts", marker, url, b.cfg.MaxAttempts),
		ErrTimeoutWaitingForContent,
	)
}

func (b *Browser) dumpDocument(ctx context.Context, browserCtx context.Context, url string) {
	if b.cfg.DumpPath == "" {
		return
	}
	var html string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html)); err != nil {
		b.logger.WarnContext(ctx, "capture timed-out document failed", "url", url, "error", err)
		return
	}
	if err := os.WriteFile(b.cfg.DumpPath, []byte(html), 0o644); err != nil {
		b.logger.WarnContext(ctx, "write timeout dump failed", "path", b.cfg.DumpPath, "error", err)
		return
	}
	b.logger.InfoContext(ctx, "dumped timed-out document", "url", url, "path", b.cfg.DumpPath)
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'', '\\':
			out = append(out, '\\', c)
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '\''))
}
