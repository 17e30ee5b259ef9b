package refresh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propdesk/internal/fleet"
)

type fakeFetcher struct {
	updates []fleet.StateUpdate
	err     error
}

func (f fakeFetcher) FetchStates(context.Context) ([]fleet.StateUpdate, error) {
	return f.updates, f.err
}

type recordingSink struct {
	applied []fleet.StateUpdate
	err     error
}

func (s *recordingSink) ApplyState(_ context.Context, updates []fleet.StateUpdate) error {
	s.applied = updates
	return s.err
}

func TestSync_WritesFetchedStates(t *testing.T) {
	updates := []fleet.StateUpdate{
		{ID: 1001, Balance: decimal.NewFromInt(100100), HasOpenPosition: true},
		{ID: 1002, Balance: decimal.NewFromInt(99950)},
	}
	sink := &recordingSink{}
	s := NewSyncer(fakeFetcher{updates: updates}, sink, time.Second, zerolog.Nop())

	require.NoError(t, s.Sync(context.Background()))
	assert.Equal(t, updates, sink.applied)
}

func TestSync_FetchErrorSkipsSink(t *testing.T) {
	sink := &recordingSink{}
	s := NewSyncer(fakeFetcher{err: assert.AnError}, sink, time.Second, zerolog.Nop())

	assert.ErrorIs(t, s.Sync(context.Background()), assert.AnError)
	assert.Nil(t, sink.applied)
}

func TestSync_SinkErrorPropagates(t *testing.T) {
	sink := &recordingSink{err: assert.AnError}
	s := NewSyncer(fakeFetcher{updates: []fleet.StateUpdate{{ID: 1}}}, sink, time.Second, zerolog.Nop())

	assert.ErrorIs(t, s.Sync(context.Background()), assert.AnError)
}

func TestTriggerHandler(t *testing.T) {
	sink := &recordingSink{}
	s := NewSyncer(fakeFetcher{updates: []fleet.StateUpdate{{ID: 1}}}, sink, time.Second, zerolog.Nop())

	rec := httptest.NewRecorder()
	s.TriggerHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/sync", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Len(t, sink.applied, 1)
}

func TestTriggerHandler_FetchError(t *testing.T) {
	s := NewSyncer(fakeFetcher{err: assert.AnError}, &recordingSink{}, time.Second, zerolog.Nop())

	rec := httptest.NewRecorder()
	s.TriggerHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/sync", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
