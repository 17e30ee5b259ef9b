package agents

import (
	"context"
	"errors"
)

// DisabledExecutor rejects every trade action. Wired when the deployment
// runs in observe-only mode.
type DisabledExecutor struct{}

func NewDisabledExecutor() *DisabledExecutor {
	return &DisabledExecutor{}
}

var errTradingDisabled = errors.New("trade execution is disabled")

func (e *DisabledExecutor) OpenPosition(ctx context.Context, req TradeRequest) (TradeResponse, error) {
	return TradeResponse{}, errTradingDisabled
}

func (e *DisabledExecutor) ClosePosition(ctx context.Context, req CloseRequest) (TradeResponse, error) {
	return TradeResponse{}, errTradingDisabled
}

func (e *DisabledExecutor) ModifyPosition(ctx context.Context, req ModifyRequest) (TradeResponse, error) {
	return TradeResponse{}, errTradingDisabled
}
