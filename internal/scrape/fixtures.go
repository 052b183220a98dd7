package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/avezquez/matchscout/internal/domain/event"
)

// scoreSeparator is the glyph the source places between the two goals of a
// populated score cell.
const scoreSeparator = "–"

// Fixtures extracts upcoming fixture rows from a league schedule page.
// Finished rows are skipped, and iteration stops at the first row dated past
// now + horizon days; the table is date-ordered so this is an early exit.
func (e *Extractor) Fixtures(html string, now time.Time, horizonDays int) ([]event.Fixture, error) {
	doc, err := e.parse(html)
	if err != nil {
		return nil, err
	}

	limit := now.AddDate(0, 0, horizonDays)
	var fixtures []event.Fixture

	doc.Find("table.stats_table tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if isRepeatedHeader(row) {
			return true
		}

		dateLink := row.Find("td[data-stat='date'] a").First()
		if dateLink.Length() == 0 {
			return true
		}
		date := strings.TrimSpace(dateLink.Text())

		if parsed, err := time.Parse("2006-01-02", date); err == nil && parsed.After(limit) {
			return false
		}

		homeLink := row.Find("td[data-stat='home_team'] a").First()
		awayLink := row.Find("td[data-stat='away_team'] a").First()
		if homeLink.Length() == 0 || awayLink.Length() == 0 {
			return true
		}
		home := strings.TrimSpace(homeLink.Text())
		away := strings.TrimSpace(awayLink.Text())

		score := cellText(row, "score")
		if strings.Contains(score, scoreSeparator) && strings.ContainsAny(score, "0123456789") {
			return true
		}

		venue := cellText(row, "venue")
		if venue == "" {
			venue = "Unknown Venue"
		}

		fixtures = append(fixtures, event.Fixture{
			Date:     date,
			Time:     cellText(row, "start_time"),
			Venue:    venue,
			HomeTeam: home,
			AwayTeam: away,
			HomeURL:  e.linkHref(homeLink),
			AwayURL:  e.linkHref(awayLink),
			URL:      e.fixtureURL(row, date, home, away),
		})
		return true
	})

	return fixtures, nil
}

func (e *Extractor) linkHref(link *goquery.Selection) string {
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return ""
	}
	return e.absoluteURL(href)
}

// fixtureURL prefers the score-cell link, then the match-report link. Rows
// too far out to have either get a deterministic synthetic identity so the
// fixture can still be stored and later matched up.
func (e *Extractor) fixtureURL(row *goquery.Selection, date, home, away string) string {
	for _, sel := range []string{"td[data-stat='score'] a", "td[data-stat='match_report'] a"} {
		if href, ok := row.Find(sel).First().Attr("href"); ok && href != "" {
			return e.absoluteURL(href)
		}
	}
	return fmt.Sprintf("fixture://%s/%s/%s", date, home, away)
}
