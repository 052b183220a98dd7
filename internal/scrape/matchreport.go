package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/avezquez/matchscout/internal/domain/matchstats"
)

type rowHandler func(row *goquery.Selection, p *matchstats.Partial)

// statCategories are the per-player tables of a match page, in source
// order. Each category appears as exactly two tables, home first.
var statCategories = []struct {
	keyword string
	handler rowHandler
}{
	{"summary", summaryRow},
	{"passing", passingRow},
	{"passing_types", passTypesRow},
	{"defense", defenseRow},
	{"misc", miscRow},
	{"gca", gcaRow},
}

// MatchReport extracts the full statistics of a finished match from its
// report page. Missing category tables degrade to fewer populated fields;
// the only hard failures are an absent scorebox and absent team names.
func (e *Extractor) MatchReport(html string) (matchstats.MatchStats, error) {
	doc, err := e.parse(stripComments(html))
	if err != nil {
		return matchstats.MatchStats{}, err
	}

	if doc.Find("div.scorebox").Length() == 0 {
		return matchstats.MatchStats{}, crerr.Mark(crerr.New("scorebox not found on match page"), ErrNoSuitableTable)
	}

	homeName, awayName, err := scoreboxTeams(doc)
	if err != nil {
		return matchstats.MatchStats{}, err
	}

	home := matchstats.PartialSet{}
	away := matchstats.PartialSet{}
	for _, category := range statCategories {
		tables := categoryTables(doc, category.keyword)
		if len(tables) < 2 {
			e.logger.Warn("category tables missing, skipping",
				"category", category.keyword, "found", len(tables))
			continue
		}
		collectRows(tables[0], home, category.handler)
		collectRows(tables[1], away, category.handler)
	}

	return matchstats.Build(scoreboxMeta(doc), homeName, awayName, home, away), nil
}

// scoreboxMeta scans the labeled meta rows under the scorebox for keyword
// markers and strips the label text from the value.
func scoreboxMeta(doc *goquery.Document) matchstats.MatchContext {
	var meta matchstats.MatchContext
	doc.Find("div.scorebox_meta > div").Each(func(_ int, div *goquery.Selection) {
		text := div.Text()
		switch {
		case strings.Contains(text, "Venue"):
			meta.Venue = stripLabels(text, "Venue")
		case strings.Contains(text, "Attendance"):
			raw := strings.ReplaceAll(stripLabels(text, "Attendance"), ",", "")
			if n, err := strconv.Atoi(raw); err == nil {
				meta.Attendance = &n
			}
		case strings.Contains(text, "Referee"), strings.Contains(text, "Official"):
			meta.Referee = stripLabels(text, "Referee", "Officials", "(Referee)")
		}
	})
	return meta
}

func stripLabels(text string, labels ...string) string {
	for _, label := range labels {
		text = strings.ReplaceAll(text, label, "")
	}
	return strings.TrimSpace(strings.ReplaceAll(text, ":", ""))
}

func scoreboxTeams(doc *goquery.Document) (string, string, error) {
	var names []string
	doc.Find("div.scorebox div[itemprop='performer'] a").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			names = append(names, name)
		}
	})
	if len(names) == 0 {
		return "", "", crerr.Mark(crerr.New("no team names in scorebox"), ErrNoSuitableTable)
	}

	home, away := names[0], "Away"
	if len(names) > 1 {
		away = names[1]
	}
	return home, away, nil
}

// categoryTables returns the tables whose id contains the category
// keyword, guarding the "passing" keyword against also matching the
// passing_types tables.
func categoryTables(doc *goquery.Document, keyword string) []*goquery.Selection {
	var tables []*goquery.Selection
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		id, _ := table.Attr("id")
		if !strings.Contains(id, keyword) {
			return
		}
		if keyword == "passing" && strings.Contains(id, "passing_types") {
			return
		}
		tables = append(tables, table)
	})
	return tables
}

// collectRows merges one category table into the side's per-player
// partials. Position and minutes fill once, first non-default value wins.
func collectRows(table *goquery.Selection, players matchstats.PartialSet, handler rowHandler) {
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if isRepeatedHeader(row) {
			return
		}
		nameLink := row.Find("th[data-stat='player'] a").First()
		if nameLink.Length() == 0 {
			return
		}

		p := players.Get(strings.TrimSpace(nameLink.Text()))
		if p.Position == "" {
			p.Position = cellText(row, "position")
		}
		if p.Minutes == 0 {
			p.Minutes = cellInt(row, "minutes")
		}
		handler(row, p)
	})
}

func summaryRow(row *goquery.Selection, p *matchstats.Partial) {
	p.XG = cellFloat(row, "xg")
	p.Shots = cellInt(row, "shots")
	p.ShotsOnTarget = cellInt(row, "shots_on_target")
	p.Goals = cellInt(row, "goals")
	p.Assists = cellInt(row, "assists")
	p.SCA = cellInt(row, "sca")
	p.GCA = cellInt(row, "gca")
}

func passingRow(row *goquery.Selection, p *matchstats.Partial) {
	p.PassesCompleted = cellInt(row, "passes_completed")
	p.PassesProgressive = cellInt(row, "progressive_passes")
	p.PassesFinalThird = cellInt(row, "passes_into_final_third")
	p.PassesPenaltyArea = cellInt(row, "passes_into_penalty_area")
	p.KeyPasses = cellInt(row, "passes_key")
	if p.XA == 0 {
		p.XA = cellFloat(row, "xg_assist")
	}
}

func passTypesRow(row *goquery.Selection, p *matchstats.Partial) {
	p.Corners = cellInt(row, "corner_kicks")
}

func defenseRow(row *goquery.Selection, p *matchstats.Partial) {
	p.TacklesWon = cellInt(row, "tackles_won")
	p.Interceptions = cellInt(row, "interceptions")
	p.Blocks = cellInt(row, "blocks")
	p.Clearances = cellInt(row, "clearances")
}

func miscRow(row *goquery.Selection, p *matchstats.Partial) {
	p.YellowCards = cellInt(row, "cards_yellow")
	p.RedCards = cellInt(row, "cards_red")
	p.FoulsCommitted = cellInt(row, "fouls")
	p.FoulsDrawn = cellInt(row, "fouls_drawn")
	p.AerialsWon = cellInt(row, "aerials_won")
	p.AerialsLost = cellInt(row, "aerials_lost")
}

// gcaRow keeps the shot-creation tables in the two-table presence
// discipline; SCA and GCA totals already come from the summary table.
func gcaRow(*goquery.Selection, *matchstats.Partial) {}
