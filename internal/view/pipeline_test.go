package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propdesk/internal/fleet"
	"propdesk/internal/risk"
	"propdesk/internal/types"
)

func row(id int64, holder, firm, phase string, open bool, pl int64, group string) Row {
	return Row{
		Account: fleet.Account{ID: id, Holder: holder, Firm: firm, Phase: phase, HasOpenPosition: open},
		Metrics: risk.Metrics{ProfitLoss: decimal.NewFromInt(pl)},
		Group:   group,
	}
}

func ids(rows []Row) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Account.ID
	}
	return out
}

func TestApply_SearchMatchesHolderFirmAndID(t *testing.T) {
	rows := []Row{
		row(1001, "Alice Ngata", "FTMO", "funded", false, 0, ""),
		row(1002, "Bob Smith", "Apex", "funded", false, 0, ""),
		row(2001, "Carol", "alpine capital", "funded", false, 0, ""),
	}

	assert.Equal(t, []int64{1001}, ids(Apply(rows, Query{Search: "alice"})))
	assert.Equal(t, []int64{1002}, ids(Apply(rows, Query{Search: "APE"})))
	assert.Equal(t, []int64{1001, 2001}, ids(Apply(rows, Query{Search: "al"})))
	assert.Equal(t, []int64{2001}, ids(Apply(rows, Query{Search: "2001"})))
	assert.Empty(t, Apply(rows, Query{Search: "zzz"}))
}

func TestApply_BlankSearchDoesNotMutateInput(t *testing.T) {
	rows := []Row{
		row(1, "a", "", "", true, 0, ""),
		row(2, "b", "", "", false, 0, ""),
	}
	out := Apply(rows, Query{Search: "  ", OpenTrade: types.OpenTradeFilterWith})
	require.Equal(t, []int64{1}, ids(out))
	// Input slice keeps both rows.
	assert.Equal(t, int64(1), rows[0].Account.ID)
	assert.Equal(t, int64(2), rows[1].Account.ID)
}

func TestApply_OpenTradeFilter(t *testing.T) {
	rows := []Row{
		row(1, "", "", "", true, 0, ""),
		row(2, "", "", "", false, 0, ""),
		row(3, "", "", "", true, 0, ""),
	}

	assert.Equal(t, []int64{1, 3}, ids(Apply(rows, Query{OpenTrade: types.OpenTradeFilterWith})))
	assert.Equal(t, []int64{2}, ids(Apply(rows, Query{OpenTrade: types.OpenTradeFilterWithout})))
	assert.Equal(t, []int64{1, 2, 3}, ids(Apply(rows, Query{OpenTrade: types.OpenTradeFilterAll})))
}

func TestApply_PhaseFilter(t *testing.T) {
	rows := []Row{
		row(1, "", "", "evaluation", false, 0, ""),
		row(2, "", "", "Funded", false, 0, ""),
		row(3, "", "", "funded", false, 0, ""),
	}

	assert.Equal(t, []int64{2, 3}, ids(Apply(rows, Query{Phase: "funded"})))
	assert.Equal(t, []int64{1, 2, 3}, ids(Apply(rows, Query{Phase: "all"})))
	assert.Equal(t, []int64{1, 2, 3}, ids(Apply(rows, Query{})))
}

func TestApply_PLSorts(t *testing.T) {
	rows := []Row{
		row(1, "", "", "", false, 50, ""),
		row(2, "", "", "", false, -20, ""),
		row(3, "", "", "", false, 300, ""),
	}

	assert.Equal(t, []int64{3, 1, 2}, ids(Apply(rows, Query{Sort: types.SortModePLDesc})))
	assert.Equal(t, []int64{2, 1, 3}, ids(Apply(rows, Query{Sort: types.SortModePLAsc})))
}

func TestApply_HolderSorts(t *testing.T) {
	rows := []Row{
		row(1, "charlie", "", "", false, 0, ""),
		row(2, "Alice", "", "", false, 0, ""),
		row(3, "bob", "", "", false, 0, ""),
	}

	assert.Equal(t, []int64{2, 3, 1}, ids(Apply(rows, Query{Sort: types.SortModeHolderAsc})))
	assert.Equal(t, []int64{1, 3, 2}, ids(Apply(rows, Query{Sort: types.SortModeHolderDesc})))
}

func TestApply_VSOrdering(t *testing.T) {
	rows := []Row{
		row(1, "", "", "", false, 500, ""),  // ungrouped, highest pl
		row(2, "", "", "", false, 10, "2"),  // group 2
		row(3, "", "", "", false, 90, "1"),  // group 1, lower pl
		row(4, "", "", "", false, 100, "1"), // group 1, higher pl
		row(5, "", "", "", false, -300, ""), // ungrouped, lowest pl
	}

	out := Apply(rows, Query{Sort: types.SortModeVS})
	assert.Equal(t, []int64{4, 3, 2, 1, 5}, ids(out))
}

func TestApply_VSNumericLabelOrder(t *testing.T) {
	rows := []Row{
		row(1, "", "", "", false, 0, "10"),
		row(2, "", "", "", false, 0, "2"),
	}
	// "2" sorts before "10" because both labels parse as integers.
	assert.Equal(t, []int64{2, 1}, ids(Apply(rows, Query{Sort: types.SortModeVS})))
}

func TestApply_VSLexicalLabelFallback(t *testing.T) {
	rows := []Row{
		row(1, "", "", "", false, 0, "team-b"),
		row(2, "", "", "", false, 0, "team-a"),
	}
	assert.Equal(t, []int64{2, 1}, ids(Apply(rows, Query{Sort: types.SortModeVS})))
}

func TestApply_SortingIsAPermutation(t *testing.T) {
	rows := []Row{
		row(1, "b", "", "", false, 5, "2"),
		row(2, "a", "", "", true, -5, ""),
		row(3, "c", "", "", false, 0, "x"),
		row(4, "a", "", "", true, 5, "1"),
	}
	modes := []types.SortMode{
		types.SortModeVS, types.SortModePLDesc, types.SortModePLAsc,
		types.SortModeHolderAsc, types.SortModeHolderDesc,
	}
	for _, mode := range modes {
		out := Apply(rows, Query{Sort: mode})
		assert.ElementsMatch(t, ids(rows), ids(out), "mode %s", mode)
	}
}

func TestApply_FullPipeline(t *testing.T) {
	rows := []Row{
		row(1, "Alice", "FTMO", "funded", true, 100, "1"),
		row(2, "Albert", "FTMO", "funded", true, 105, "1"),
		row(3, "Alfred", "FTMO", "evaluation", true, -50, ""),
		row(4, "Alan", "FTMO", "funded", false, 20, ""),
		row(5, "Bob", "FTMO", "funded", true, 9000, ""),
	}
	q := Query{
		Search:    "al",
		OpenTrade: types.OpenTradeFilterWith,
		Phase:     "funded",
		Sort:      types.SortModeVS,
	}
	assert.Equal(t, []int64{2, 1}, ids(Apply(rows, q)))
}
