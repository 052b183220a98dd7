package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	// Upsert finds a team by (sport, name) or inserts it. A non-empty URL
	// always overwrites the stored one, last write wins.
	Upsert(ctx context.Context, name, url string) (int64, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
}
