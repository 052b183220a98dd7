package usecase

import (
	"context"
	"fmt"

	"github.com/avezquez/matchscout/internal/domain/event"
)

// MatchService serves the stored match read models.
type MatchService struct {
	events event.Repository
}

func NewMatchService(events event.Repository) *MatchService {
	return &MatchService{events: events}
}

func (s *MatchService) List(ctx context.Context) ([]event.Preview, error) {
	previews, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return previews, nil
}

func (s *MatchService) Get(ctx context.Context, id int64) (event.Preview, error) {
	if id <= 0 {
		return event.Preview{}, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}

	preview, found, err := s.events.GetPreview(ctx, id)
	if err != nil {
		return event.Preview{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return event.Preview{}, fmt.Errorf("%w: match %d", ErrNotFound, id)
	}
	return preview, nil
}
