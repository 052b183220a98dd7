package fetch

import (
	"context"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

// Direct is the cheapest tier: a plain HTTP GET with browser-shaped
// headers. It fails fast when the origin serves a challenge page so the
// chain can escalate to a heavier strategy.
type Direct struct {
	client *resty.Client
	logger *logging.Logger
}

func NewDirect(timeout time.Duration, logger *logging.Logger) *Direct {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	client := resty.New().SetTimeout(timeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	return &Direct{client: client, logger: logger}
}

func (d *Direct) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", browser.Chrome()).
		Get(url)
	if err != nil {
		return "", crerr.Wrapf(err, "direct request to %s", url)
	}
	if !resp.IsSuccess() {
		return "", crerr.Newf("direct request to %s: status %d", url, resp.StatusCode())
	}

	body := resp.String()
	if looksLikeChallenge(body) {
		d.logger.DebugContext(ctx, "direct fetch hit challenge page", "url", url)
		return "", crerr.Newf("direct request to %s: challenge page served", url)
	}
	return body, nil
}
