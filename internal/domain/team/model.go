package team

import "fmt"

// Team is a real football club referenced by fixtures and finished matches.
// Rows are created lazily on first reference; URL tracks the freshest
// observed profile page and may be empty until first scraped.
type Team struct {
	ID      int64
	SportID string
	Name    string
	URL     string
}

// Source identifies a club on the upstream site before it has a stored row.
type Source struct {
	Name    string
	ID      string
	BaseURL string
}

func (t Team) Validate() error {
	if t.SportID == "" {
		return fmt.Errorf("team sport id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
