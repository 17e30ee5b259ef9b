package risk

import (
	"github.com/shopspring/decimal"
)

// Params carries the firm-wide risk thresholds. Defaults match the
// evaluation programs the fleet currently runs: 8% profit target, 10%
// max drawdown, loss buffer display capped at 4000 USD.
type Params struct {
	ProfitTargetPct       decimal.Decimal
	MaxLossPct            decimal.Decimal
	BufferCap             decimal.Decimal
	DefaultInitialBalance decimal.Decimal
}

func DefaultParams() Params {
	return Params{
		ProfitTargetPct:       decimal.NewFromInt(8),
		MaxLossPct:            decimal.NewFromInt(10),
		BufferCap:             decimal.NewFromInt(4000),
		DefaultInitialBalance: decimal.NewFromInt(100000),
	}
}

type Metrics struct {
	ProfitLoss       decimal.Decimal `json:"profit_loss"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	MaxLossBuffer    decimal.Decimal `json:"max_loss_buffer"`
	Band             string          `json:"band"`
}

const (
	BandTarget   = "purple"
	BandProfit   = "green"
	BandDrawdown = "orange"
	BandBreached = "red"
)

var pctFactor = decimal.NewFromInt(100)

// Compute derives the per-account display metrics. It never fails: a zero
// initial balance yields a zero percentage instead of dividing.
func (p Params) Compute(balance, initialBalance decimal.Decimal) Metrics {
	pl := balance.Sub(initialBalance)
	pct := decimal.Zero
	if !initialBalance.IsZero() {
		pct = pl.Div(initialBalance).Mul(pctFactor)
	}
	floor := initialBalance.Mul(p.MaxLossPct).Div(pctFactor)
	buffer := floor.Sub(initialBalance.Sub(balance))
	if buffer.GreaterThan(p.BufferCap) {
		buffer = p.BufferCap
	}
	return Metrics{
		ProfitLoss:       pl,
		ProfitPercentage: pct,
		MaxLossBuffer:    buffer,
		Band:             p.band(pct),
	}
}

// ResolveInitialBalance applies the registry default when an account was
// onboarded without one.
func (p Params) ResolveInitialBalance(initialBalance decimal.Decimal) decimal.Decimal {
	if initialBalance.IsZero() {
		return p.DefaultInitialBalance
	}
	return initialBalance
}

// Eligible reports whether an account sits in the safe band for auto
// pairing: below the profit target and above the loss limit.
func (p Params) Eligible(profitPct decimal.Decimal) bool {
	return profitPct.LessThanOrEqual(p.ProfitTargetPct) &&
		profitPct.GreaterThan(p.MaxLossPct.Neg())
}

func (p Params) band(pct decimal.Decimal) string {
	switch {
	case pct.GreaterThanOrEqual(p.ProfitTargetPct):
		return BandTarget
	case pct.GreaterThanOrEqual(decimal.Zero):
		return BandProfit
	case pct.GreaterThan(p.MaxLossPct.Neg()):
		return BandDrawdown
	default:
		return BandBreached
	}
}
