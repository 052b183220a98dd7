package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/avezquez/matchscout/internal/domain/team"
)

var rosterHeaderMarkers = []string{"squad", "team", "club"}

// Teams extracts every club from a league standings/roster page. The table
// is found by header content rather than a fixed id because the source
// renders different table ids per competition.
func (e *Extractor) Teams(html string) ([]team.Source, error) {
	doc, err := e.parse(stripComments(html))
	if err != nil {
		return nil, err
	}

	table := findRosterTable(doc)
	if table == nil {
		return nil, crerr.Mark(crerr.New("no table with a squad/team/club header"), ErrNoSuitableTable)
	}

	var teams []team.Source
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if isRepeatedHeader(row) {
			return
		}

		link := row.Find("[data-stat='squad'] a, [data-stat='team'] a").First()
		if link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		id := squadID(href)
		if id == "" {
			return
		}

		teams = append(teams, team.Source{
			Name:    strings.TrimSpace(link.Text()),
			ID:      id,
			BaseURL: e.baseURL + "/en/squads/" + id + "/",
		})
	})

	return teams, nil
}

func findRosterTable(doc *goquery.Document) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, candidate *goquery.Selection) bool {
		valid := false
		candidate.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			text := strings.ToLower(th.Text())
			for _, marker := range rosterHeaderMarkers {
				if strings.Contains(text, marker) {
					valid = true
					return false
				}
			}
			return true
		})
		if valid {
			table = candidate
			return false
		}
		return true
	})
	return table
}

// squadID pulls the club identifier out of a squad profile href, the path
// segment right after "squads".
func squadID(href string) string {
	parts := strings.Split(href, "/")
	for i, part := range parts {
		if part == "squads" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
