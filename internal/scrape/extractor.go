// Package scrape turns raw fbref HTML documents into domain records. All
// entry points take a complete document string so fetching and parsing stay
// independently testable.
package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/avezquez/matchscout/internal/platform/logging"
)

// ErrNoSuitableTable means a required table or page section was absent
// entirely. Partial tables degrade softly and never raise this.
var ErrNoSuitableTable = crerr.New("no suitable table found")

type Extractor struct {
	baseURL string
	logger  *logging.Logger
}

func NewExtractor(baseURL string, logger *logging.Logger) *Extractor {
	if baseURL == "" {
		baseURL = "https://fbref.com"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{baseURL: strings.TrimSuffix(baseURL, "/"), logger: logger}
}

func (e *Extractor) parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crerr.Wrap(err, "parse document")
	}
	return doc, nil
}

// absoluteURL resolves a source-relative href against the upstream host.
func (e *Extractor) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return e.baseURL + href
}

// isRepeatedHeader reports whether a body row is one of the mid-table
// header rows the source repeats for readability.
func isRepeatedHeader(row *goquery.Selection) bool {
	cls, _ := row.Attr("class")
	return strings.Contains(cls, "thead")
}

// cellText returns the trimmed text of the cell carrying the given
// data-stat marker. Cells are addressed by marker, never by position.
func cellText(row *goquery.Selection, stat string) string {
	return strings.TrimSpace(row.Find("[data-stat='" + stat + "']").First().Text())
}

// cellInt parses an integer cell leniently: thousands separators are
// stripped and anything unparseable reads as zero.
func cellInt(row *goquery.Selection, stat string) int {
	text := strings.ReplaceAll(cellText(row, stat), ",", "")
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}

func cellFloat(row *goquery.Selection, stat string) float64 {
	text := strings.ReplaceAll(cellText(row, stat), ",", "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return f
}

var commentStripper = strings.NewReplacer("<!--", "", "-->", "")

// stripComments unhides the statistics tables the source ships inside HTML
// comments for lazy rendering.
func stripComments(html string) string {
	return commentStripper.Replace(html)
}
