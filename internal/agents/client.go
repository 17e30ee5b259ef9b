package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"propdesk/internal/fleet"
)

// Client talks to the agent hub: one REST surface fronting the remote
// execution agents that actually hold the accounts.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "agents").Logger(),
	}
}

type accountState struct {
	Login           int64           `json:"login"`
	Balance         decimal.Decimal `json:"balance"`
	HasOpenPosition bool            `json:"has_open_position"`
}

// FetchStates pulls the current balance and open-position flag for every
// account the hub knows about.
func (c *Client) FetchStates(ctx context.Context) ([]fleet.StateUpdate, error) {
	var states []accountState
	if err := c.get(ctx, "/v1/accounts/state", &states); err != nil {
		return nil, err
	}
	out := make([]fleet.StateUpdate, 0, len(states))
	for _, st := range states {
		out = append(out, fleet.StateUpdate{
			ID:              st.Login,
			Balance:         st.Balance,
			HasOpenPosition: st.HasOpenPosition,
		})
	}
	return out, nil
}

func (c *Client) OpenPosition(ctx context.Context, req TradeRequest) (TradeResponse, error) {
	var resp TradeResponse
	err := c.post(ctx, "/v1/trade/open", req, &resp)
	return resp, err
}

func (c *Client) ClosePosition(ctx context.Context, req CloseRequest) (TradeResponse, error) {
	var resp TradeResponse
	err := c.post(ctx, "/v1/trade/close", req, &resp)
	return resp, err
}

func (c *Client) ModifyPosition(ctx context.Context, req ModifyRequest) (TradeResponse, error) {
	var resp TradeResponse
	err := c.post(ctx, "/v1/trade/modify", req, &resp)
	return resp, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return errors.New("agent hub: " + e.Error)
		}
		return fmt.Errorf("agent hub: unexpected status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
