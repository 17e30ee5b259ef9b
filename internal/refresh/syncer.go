package refresh

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"propdesk/internal/fleet"
	"propdesk/internal/httputil"
	"propdesk/internal/metrics"
)

type StateFetcher interface {
	FetchStates(ctx context.Context) ([]fleet.StateUpdate, error)
}

type StateSink interface {
	ApplyState(ctx context.Context, updates []fleet.StateUpdate) error
}

// Syncer pulls live account state from the agent hub and writes it into
// the registry. Query-time reads only ever see the registry, so a failed
// sync leaves the previous snapshot in place rather than an error.
type Syncer struct {
	fetcher StateFetcher
	sink    StateSink
	timeout time.Duration
	log     zerolog.Logger
}

func NewSyncer(fetcher StateFetcher, sink StateSink, timeout time.Duration, log zerolog.Logger) *Syncer {
	return &Syncer{
		fetcher: fetcher,
		sink:    sink,
		timeout: timeout,
		log:     log.With().Str("component", "sync").Logger(),
	}
}

func (s *Syncer) Name() string { return "fleet_state_sync" }

func (s *Syncer) Run() error {
	err := s.Sync(context.Background())
	metrics.ObserveSync(err)
	return err
}

func (s *Syncer) Sync(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updates, err := s.fetcher.FetchStates(ctx)
	if err != nil {
		return err
	}
	if err := s.sink.ApplyState(ctx, updates); err != nil {
		return err
	}
	s.log.Info().Int("accounts", len(updates)).Msg("fleet state synced")
	return nil
}

// TriggerHandler exposes the sync for the internal API so ops can force a
// refresh without waiting for the schedule.
func (s *Syncer) TriggerHandler(w http.ResponseWriter, r *http.Request) {
	err := s.Sync(r.Context())
	metrics.ObserveSync(err)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadGateway, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
