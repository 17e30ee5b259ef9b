package recon

import (
	"context"

	"github.com/rs/zerolog"

	"propdesk/internal/fleet"
	"propdesk/internal/metrics"
	"propdesk/internal/pairing"
	"propdesk/internal/risk"
	"propdesk/internal/view"
)

// Source yields the current full account snapshot, manual overrides
// included. Backed by the fleet registry in production.
type Source interface {
	List(ctx context.Context) ([]fleet.Account, error)
}

// Service runs one reconciliation pass per query: snapshot → dedupe →
// metrics → auto pairing → override merge → sort/filter. It keeps no state
// between calls; a fresher snapshot fully supersedes the previous result,
// and a snapshot that is stale relative to an in-flight override write is
// fine, the next pass picks it up.
type Service struct {
	source Source
	engine *pairing.Engine
	params risk.Params
	log    zerolog.Logger
}

func NewService(source Source, params risk.Params, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		engine: pairing.NewEngine(params),
		params: params,
		log:    log.With().Str("component", "recon").Logger(),
	}
}

func (s *Service) Build(ctx context.Context, q view.Query) ([]view.Row, error) {
	accounts, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}
	raw := len(accounts)
	accounts = fleet.Dedupe(accounts)
	if dropped := raw - len(accounts); dropped > 0 {
		s.log.Warn().Int("dropped", dropped).Msg("duplicate account ids in snapshot")
	}

	auto := s.engine.Assign(accounts)
	merged := pairing.Merge(accounts, auto)

	rows := make([]view.Row, 0, len(accounts))
	for _, a := range accounts {
		initial := s.params.ResolveInitialBalance(a.InitialBalance)
		rows = append(rows, view.Row{
			Account: a,
			Metrics: s.params.Compute(a.Balance, initial),
			Group:   merged[a.ID],
		})
	}

	metrics.ObserveRecon(len(accounts), len(auto)/2, len(merged))
	return view.Apply(rows, q), nil
}
