package recon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propdesk/internal/fleet"
	"propdesk/internal/httputil"
	"propdesk/internal/risk"
	"propdesk/internal/view"
)

func TestFleet_AppliesQueryParams(t *testing.T) {
	one := snapshotAccount(1, 100)
	one.Holder = "Alice"
	one.Phase = "funded"
	two := snapshotAccount(2, 105)
	two.Holder = "Bob"
	two.Phase = "evaluation"
	src := staticSource{accounts: []fleet.Account{one, two}}
	h := NewHandler(NewService(src, risk.DefaultParams(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/v1/fleet?phase=funded&sort=pl_desc", nil)
	rec := httptest.NewRecorder()
	h.Fleet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []view.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Account.Holder)
}

func TestFleet_UnknownParamsFallBackToDefaults(t *testing.T) {
	src := staticSource{accounts: []fleet.Account{snapshotAccount(1, 100), snapshotAccount(2, 105)}}
	h := NewHandler(NewService(src, risk.DefaultParams(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/v1/fleet?sort=bogus&open=bogus", nil)
	rec := httptest.NewRecorder()
	h.Fleet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []view.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	// Default VS sort: the auto pair leads with P/L descending.
	assert.Equal(t, int64(2), rows[0].Account.ID)
}

func TestFleet_EmptyFleetReturnsEmptyArray(t *testing.T) {
	h := NewHandler(NewService(staticSource{}, risk.DefaultParams(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/v1/fleet", nil)
	rec := httptest.NewRecorder()
	h.Fleet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestFleet_SourceError(t *testing.T) {
	h := NewHandler(NewService(staticSource{err: assert.AnError}, risk.DefaultParams(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/v1/fleet", nil)
	rec := httptest.NewRecorder()
	h.Fleet(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}
