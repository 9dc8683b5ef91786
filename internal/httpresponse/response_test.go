package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "goban/internal/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.ErrGameNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: abc", errs.ErrGameNotFound), http.StatusNotFound},
		{errs.ErrPlayerNotInGame, http.StatusForbidden},
		{errs.ErrPlayerOutOfTurn, http.StatusConflict},
		{errs.ErrGameNotStarted, http.StatusConflict},
		{errs.ErrClientOutOfSync, http.StatusConflict},
		{errs.ErrGameInProgress, http.StatusConflict},
		{errs.ErrSuicide, http.StatusUnprocessableEntity},
		{errs.ErrRepeatedPosition, http.StatusUnprocessableEntity},
		{errs.ErrIllegalCoordinate, http.StatusUnprocessableEntity},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Run("Known errors keep their message", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteError(w, errs.ErrSuicide)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp Response[ErrorResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
		assert.Equal(t, map[string]any{"ErrorDescription": errs.ErrSuicide.Error()}, resp.Body)
	})

	t.Run("Unknown errors are hidden", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteError(w, fmt.Errorf("mongo exploded"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "mongo")
	})
}
