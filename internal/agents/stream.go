package agents

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"propdesk/internal/fleet"
)

// Feed consumes the hub's websocket state stream and pushes updates into
// the registry between scheduled syncs. It is an optimization only: the
// cron sync remains the source of truth and the reconciliation pass never
// depends on the feed being connected.
type Feed struct {
	url   string
	token string
	apply func(ctx context.Context, updates []fleet.StateUpdate) error
	log   zerolog.Logger
}

func NewFeed(url, token string, apply func(ctx context.Context, updates []fleet.StateUpdate) error, log zerolog.Logger) *Feed {
	return &Feed{
		url:   url,
		token: token,
		apply: apply,
		log:   log.With().Str("component", "agent_feed").Logger(),
	}
}

type feedMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Run blocks, reconnecting until ctx is done.
func (f *Feed) Run(ctx context.Context) {
	for {
		if err := f.consume(ctx); err != nil {
			f.log.Warn().Err(err).Msg("feed disconnected")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func (f *Feed) consume(ctx context.Context) error {
	header := http.Header{}
	if f.token != "" {
		header.Set("Authorization", "Bearer "+f.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	f.log.Info().Str("url", f.url).Msg("feed connected")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg feedMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		if msg.Type != "account_state" {
			continue
		}
		var states []accountState
		if err := json.Unmarshal(msg.Data, &states); err != nil {
			continue
		}
		updates := make([]fleet.StateUpdate, 0, len(states))
		for _, st := range states {
			updates = append(updates, fleet.StateUpdate{
				ID:              st.Login,
				Balance:         st.Balance,
				HasOpenPosition: st.HasOpenPosition,
			})
		}
		if err := f.apply(ctx, updates); err != nil {
			f.log.Error().Err(err).Msg("apply feed update")
		}
	}
}
