package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezquez/matchscout/internal/domain/event"
)

type previewEventRepo struct {
	stubEventRepo
	previews map[int64]event.Preview
}

func (r *previewEventRepo) List(context.Context) ([]event.Preview, error) {
	out := make([]event.Preview, 0, len(r.previews))
	for _, p := range r.previews {
		out = append(out, p)
	}
	return out, nil
}

func (r *previewEventRepo) GetPreview(_ context.Context, id int64) (event.Preview, bool, error) {
	p, ok := r.previews[id]
	return p, ok, nil
}

func TestMatchServiceGet(t *testing.T) {
	t.Parallel()

	repo := &previewEventRepo{previews: map[int64]event.Preview{
		1: {ID: 1, HomeTeam: "Arsenal", AwayTeam: "Chelsea", Score: "vs"},
	}}
	svc := NewMatchService(repo)

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", got.HomeTeam)

	_, err = svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
