package httpapi

import (
	"fmt"
	"net/http"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/avezquez/matchscout/internal/fetch"
	"github.com/avezquez/matchscout/internal/scrape"
	"github.com/avezquez/matchscout/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("%w: bad id", usecase.ErrInvalidInput), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: match 7", usecase.ErrNotFound), http.StatusNotFound},
		{"insufficient history", fmt.Errorf("%w: team 3", usecase.ErrInsufficientHistory), http.StatusUnprocessableEntity},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable},
		{"fetch failed", crerr.Mark(crerr.New("all strategies failed"), fetch.ErrFetchFailed), http.StatusBadGateway},
		{"interstitial timeout", crerr.Mark(crerr.New("marker never appeared"), fetch.ErrTimeoutWaitingForContent), http.StatusGatewayTimeout},
		{"no suitable table", crerr.Mark(crerr.New("no roster table"), scrape.ErrNoSuitableTable), http.StatusBadGateway},
		{"unknown", crerr.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, mapError(tc.err).HTTPStatus)
		})
	}
}
