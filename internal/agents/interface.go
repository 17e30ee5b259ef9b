package agents

import (
	"context"

	"github.com/shopspring/decimal"
)

type TradeRequest struct {
	RequestID  string           `json:"request_id"`
	AccountID  int64            `json:"account_id"`
	Symbol     string           `json:"symbol"`
	Side       string           `json:"side"`
	Volume     decimal.Decimal  `json:"volume"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	StopLoss   *decimal.Decimal `json:"stop_loss,omitempty"`
	TakeProfit *decimal.Decimal `json:"take_profit,omitempty"`
}

type CloseRequest struct {
	RequestID  string `json:"request_id"`
	AccountID  int64  `json:"account_id"`
	PositionID string `json:"position_id"`
}

type ModifyRequest struct {
	RequestID  string           `json:"request_id"`
	AccountID  int64            `json:"account_id"`
	PositionID string           `json:"position_id"`
	StopLoss   *decimal.Decimal `json:"stop_loss,omitempty"`
	TakeProfit *decimal.Decimal `json:"take_profit,omitempty"`
}

type TradeResponse struct {
	PositionID string `json:"position_id"`
	Status     string `json:"status"`
}

// Executor proxies trade actions to the remote execution agents. The
// dashboard never executes anything itself.
type Executor interface {
	OpenPosition(ctx context.Context, req TradeRequest) (TradeResponse, error)
	ClosePosition(ctx context.Context, req CloseRequest) (TradeResponse, error)
	ModifyPosition(ctx context.Context, req ModifyRequest) (TradeResponse, error)
}
