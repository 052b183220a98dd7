package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/avezquez/matchscout/internal/domain/event"
	"github.com/avezquez/matchscout/internal/domain/matchstats"
	"github.com/avezquez/matchscout/internal/domain/team"
	"github.com/avezquez/matchscout/internal/platform/logging"
)

// PageFetcher retrieves static documents that render without JavaScript.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ReportFetcher retrieves documents whose content appears only after an
// interstitial clears, waiting for a marker element.
type ReportFetcher interface {
	FetchWait(ctx context.Context, url, marker string) (string, error)
}

// Extractor parses fetched documents into domain records.
type Extractor interface {
	Fixtures(html string, now time.Time, horizonDays int) ([]event.Fixture, error)
	Teams(html string) ([]team.Source, error)
	MatchLogs(html string) ([]event.MatchLogEntry, error)
	MatchReport(html string) (matchstats.MatchStats, error)
}

// CrawlConfig carries the traversal policy. Seasons and delays are
// injected rather than compiled in so tests can run with fakes and zero
// waiting.
type CrawlConfig struct {
	Seasons      []string
	DelayMin     time.Duration
	DelayMax     time.Duration
	HorizonDays  int
	ReportMarker string
}

func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		Seasons:      []string{"2026-2027", "2025-2026", "2024-2025"},
		DelayMin:     2 * time.Second,
		DelayMax:     5 * time.Second,
		HorizonDays:  30,
		ReportMarker: ".scorebox",
	}
}

// BackfillReport summarizes one history backfill run. Per-item failures
// are logged and counted, never fatal to the batch.
type BackfillReport struct {
	Scraped int `json:"scraped"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type CrawlService struct {
	cfg       CrawlConfig
	pages     PageFetcher
	reports   ReportFetcher
	extractor Extractor
	events    event.Repository
	logger    *logging.Logger

	sleep func(time.Duration)
	now   func() time.Time
}

func NewCrawlService(
	cfg CrawlConfig,
	pages PageFetcher,
	reports ReportFetcher,
	extractor Extractor,
	events event.Repository,
	logger *logging.Logger,
) *CrawlService {
	def := DefaultCrawlConfig()
	if len(cfg.Seasons) == 0 {
		cfg.Seasons = def.Seasons
	}
	if cfg.DelayMin <= 0 {
		cfg.DelayMin = def.DelayMin
	}
	if cfg.DelayMax < cfg.DelayMin {
		cfg.DelayMax = cfg.DelayMin
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = def.HorizonDays
	}
	if cfg.ReportMarker == "" {
		cfg.ReportMarker = def.ReportMarker
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &CrawlService{
		cfg:       cfg,
		pages:     pages,
		reports:   reports,
		extractor: extractor,
		events:    events,
		logger:    logger,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// SyncFixtures fetches a league schedule page and stores every upcoming
// fixture. It returns the number of fixtures saved; a failure to save one
// row is logged and skipped, not fatal.
func (s *CrawlService) SyncFixtures(ctx context.Context, leagueURL string) (int, error) {
	leagueURL = strings.TrimSpace(leagueURL)
	if leagueURL == "" {
		return 0, fmt.Errorf("%w: league url is required", ErrInvalidInput)
	}

	html, err := s.pages.Fetch(ctx, leagueURL)
	if err != nil {
		return 0, fmt.Errorf("fetch league schedule: %w", err)
	}

	fixtures, err := s.extractor.Fixtures(html, s.now(), s.cfg.HorizonDays)
	if err != nil {
		return 0, fmt.Errorf("extract fixtures: %w", err)
	}

	saved := 0
	for _, f := range fixtures {
		if err := s.events.SaveFixture(ctx, f); err != nil {
			s.logger.WarnContext(ctx, "save fixture failed, skipping",
				"url", f.URL, "home", f.HomeTeam, "away", f.AwayTeam, "error", err)
			continue
		}
		saved++
	}

	s.logger.InfoContext(ctx, "fixtures synced", "league_url", leagueURL,
		"extracted", len(fixtures), "saved", saved)
	return saved, nil
}

// LeagueTeams fetches a league roster page and returns every club found.
func (s *CrawlService) LeagueTeams(ctx context.Context, leagueURL string) ([]team.Source, error) {
	leagueURL = strings.TrimSpace(leagueURL)
	if leagueURL == "" {
		return nil, fmt.Errorf("%w: league url is required", ErrInvalidInput)
	}

	html, err := s.pages.Fetch(ctx, leagueURL)
	if err != nil {
		return nil, fmt.Errorf("fetch league roster: %w", err)
	}

	teams, err := s.extractor.Teams(html)
	if err != nil {
		return nil, fmt.Errorf("extract teams: %w", err)
	}
	return teams, nil
}

// BackfillEvent scrapes the full recent history of a stored event's two
// teams: each team's season match logs are walked, and every match report
// not yet in the store is fetched, extracted and persisted. Already-stored
// matches are skipped, which makes repeated runs cheap.
func (s *CrawlService) BackfillEvent(ctx context.Context, eventID int64) (BackfillReport, error) {
	if eventID <= 0 {
		return BackfillReport{}, fmt.Errorf("%w: event id must be positive", ErrInvalidInput)
	}

	homeURL, awayURL, err := s.events.TeamURLs(ctx, eventID)
	if err != nil {
		return BackfillReport{}, fmt.Errorf("get event team urls: %w", err)
	}
	if homeURL == "" || awayURL == "" {
		return BackfillReport{}, fmt.Errorf("%w: event %d has no stored team urls, sync fixtures first", ErrInvalidInput, eventID)
	}

	entries := s.collectMatchLogs(ctx, homeURL, awayURL)

	var report BackfillReport
	for _, entry := range entries {
		has, err := s.events.HasCompletedStats(ctx, entry.URL)
		if err != nil {
			return report, fmt.Errorf("check stored stats: %w", err)
		}
		if has {
			report.Skipped++
			continue
		}

		s.politeDelay()

		html, err := s.reports.FetchWait(ctx, entry.URL, s.cfg.ReportMarker)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch match report failed, skipping",
				"url", entry.URL, "error", err)
			report.Failed++
			continue
		}

		stats, err := s.extractor.MatchReport(html)
		if err != nil {
			s.logger.WarnContext(ctx, "extract match report failed, skipping",
				"url", entry.URL, "error", err)
			report.Failed++
			continue
		}

		if err := s.events.SaveMatchComplete(ctx, stats, entry.Date, entry.URL); err != nil {
			s.logger.WarnContext(ctx, "save match failed, skipping",
				"url", entry.URL, "error", err)
			report.Failed++
			continue
		}
		report.Scraped++
	}

	s.logger.InfoContext(ctx, "backfill complete", "event_id", eventID,
		"scraped", report.Scraped, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

// collectMatchLogs walks both teams' season match-log pages and collects
// report entries deduplicated by URL; the two teams of a derby share one
// report page, and URL identity also dedups across seasons.
func (s *CrawlService) collectMatchLogs(ctx context.Context, teamURLs ...string) []event.MatchLogEntry {
	seen := make(map[string]bool)
	var entries []event.MatchLogEntry

	for _, teamURL := range teamURLs {
		base := teamURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		for _, season := range s.cfg.Seasons {
			seasonURL := base + season + "/matchlogs/all_comps/schedule/"

			s.politeDelay()

			html, err := s.pages.Fetch(ctx, seasonURL)
			if err != nil {
				s.logger.WarnContext(ctx, "fetch season match logs failed, skipping",
					"url", seasonURL, "error", err)
				continue
			}

			logs, err := s.extractor.MatchLogs(html)
			if err != nil {
				s.logger.WarnContext(ctx, "extract season match logs failed, skipping",
					"url", seasonURL, "error", err)
				continue
			}

			for _, entry := range logs {
				if seen[entry.URL] {
					continue
				}
				seen[entry.URL] = true
				entries = append(entries, entry)
			}
		}
	}

	return entries
}

func (s *CrawlService) politeDelay() {
	jitter := s.cfg.DelayMax - s.cfg.DelayMin
	d := s.cfg.DelayMin
	if jitter > 0 {
		d += time.Duration(rand.Int63n(int64(jitter)))
	}
	s.sleep(d)
}
