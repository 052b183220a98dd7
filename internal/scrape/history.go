package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/avezquez/matchscout/internal/domain/event"
)

// MatchLogs extracts the played matches from a team's season match-log
// page. Rows without a "Match Report" link (postponed or unplayed matches)
// are skipped. A page with no match-log table yields an empty list, not an
// error: a club may simply have no logs for a season.
func (e *Extractor) MatchLogs(html string) ([]event.MatchLogEntry, error) {
	doc, err := e.parse(stripComments(html))
	if err != nil {
		return nil, err
	}

	var entries []event.MatchLogEntry
	doc.Find("table[id^='matchlogs_for']").First().Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if isRepeatedHeader(row) {
			return
		}

		link := row.Find("td[data-stat='match_report'] a").First()
		if link.Length() == 0 || strings.TrimSpace(link.Text()) != "Match Report" {
			return
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		entries = append(entries, event.MatchLogEntry{
			Date: cellText(row, "date"),
			URL:  e.absoluteURL(href),
		})
	})

	return entries, nil
}
