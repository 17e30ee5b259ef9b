package recon

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propdesk/internal/fleet"
	"propdesk/internal/risk"
	"propdesk/internal/view"
)

type staticSource struct {
	accounts []fleet.Account
	err      error
}

func (s staticSource) List(context.Context) ([]fleet.Account, error) {
	return s.accounts, s.err
}

func snapshotAccount(id int64, pl int64) fleet.Account {
	initial := decimal.NewFromInt(100000)
	return fleet.Account{
		ID:             id,
		Balance:        initial.Add(decimal.NewFromInt(pl)),
		InitialBalance: initial,
	}
}

func TestBuild_PairsAndComputesMetrics(t *testing.T) {
	src := staticSource{accounts: []fleet.Account{
		snapshotAccount(1, 100),
		snapshotAccount(2, 105),
		snapshotAccount(3, -50),
	}}
	svc := NewService(src, risk.DefaultParams(), zerolog.Nop())

	rows, err := svc.Build(context.Background(), view.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// VS default sort puts the pair first, P/L descending inside it.
	assert.Equal(t, int64(2), rows[0].Account.ID)
	assert.Equal(t, int64(1), rows[1].Account.ID)
	assert.Equal(t, rows[0].Group, rows[1].Group)
	assert.NotEmpty(t, rows[0].Group)
	assert.Empty(t, rows[2].Group)

	assert.True(t, rows[1].Metrics.ProfitLoss.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[1].Metrics.ProfitPercentage.Equal(decimal.RequireFromString("0.1")))
}

func TestBuild_ManualGroupOverridesAuto(t *testing.T) {
	a := snapshotAccount(1, 100)
	a.ManualGroup = "Z"
	src := staticSource{accounts: []fleet.Account{a, snapshotAccount(2, 105)}}
	svc := NewService(src, risk.DefaultParams(), zerolog.Nop())

	rows, err := svc.Build(context.Background(), view.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[int64]view.Row{}
	for _, r := range rows {
		byID[r.Account.ID] = r
	}
	assert.Equal(t, "Z", byID[1].Group)
	assert.Equal(t, "1", byID[2].Group)
}

func TestBuild_DropsDuplicateIDs(t *testing.T) {
	first := snapshotAccount(5, 10)
	first.Holder = "keep"
	second := snapshotAccount(5, 999)
	second.Holder = "drop"
	src := staticSource{accounts: []fleet.Account{first, second}}
	svc := NewService(src, risk.DefaultParams(), zerolog.Nop())

	rows, err := svc.Build(context.Background(), view.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "keep", rows[0].Account.Holder)
}

func TestBuild_SourceErrorPropagates(t *testing.T) {
	wantErr := errors.New("registry down")
	svc := NewService(staticSource{err: wantErr}, risk.DefaultParams(), zerolog.Nop())

	rows, err := svc.Build(context.Background(), view.Query{})
	assert.ErrorIs(t, err, wantErr)
	assert.Nil(t, rows)
}

func TestBuild_EmptySnapshot(t *testing.T) {
	svc := NewService(staticSource{}, risk.DefaultParams(), zerolog.Nop())

	rows, err := svc.Build(context.Background(), view.Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
