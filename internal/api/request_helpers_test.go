package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/wordsplit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withURLParam attaches a chi route parameter to the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathUUID(t *testing.T) {
	t.Parallel()

	valid := uuid.New()

	tests := []struct {
		name        string
		paramValue  string
		expectedID  uuid.UUID
		expectedErr error
	}{
		{name: "valid UUID", paramValue: valid.String(), expectedID: valid},
		{name: "missing parameter", paramValue: "", expectedErr: domain.ErrValidation},
		{name: "invalid UUID", paramValue: "not-a-uuid", expectedErr: domain.ErrInvalidID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tc.paramValue)
			id, err := getPathUUID(req, "id")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "id", ve.Field)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id)
		})
	}
}

func TestGetPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		expectedLimit  int
		expectedOffset int
		expectErr      bool
	}{
		{name: "defaults", query: "", expectedLimit: DefaultPageLimit, expectedOffset: 0},
		{name: "explicit", query: "?limit=5&offset=10", expectedLimit: 5, expectedOffset: 10},
		{name: "clamped limit", query: "?limit=1000", expectedLimit: MaxPageLimit},
		{name: "zero limit", query: "?limit=0", expectErr: true},
		{name: "non-numeric limit", query: "?limit=ten", expectErr: true},
		{name: "negative offset", query: "?offset=-1", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/dictionaries"+tc.query, nil)
			limit, offset, err := getPagination(req)

			if tc.expectErr {
				assert.ErrorIs(t, err, domain.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedLimit, limit)
			assert.Equal(t, tc.expectedOffset, offset)
		})
	}
}
