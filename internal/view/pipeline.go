package view

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"propdesk/internal/fleet"
	"propdesk/internal/risk"
	"propdesk/internal/types"
)

// Row is one display-ready entry: the account, its transient metrics and
// the merged group label ("" when ungrouped).
type Row struct {
	Account fleet.Account `json:"account"`
	Metrics risk.Metrics  `json:"metrics"`
	Group   string        `json:"group,omitempty"`
}

type Query struct {
	Search    string
	OpenTrade types.OpenTradeFilter
	Phase     string
	Sort      types.SortMode
}

// Apply runs the fixed search → open filter → phase filter → sort
// pipeline. Step order matters for correctness, not speed. No step errors;
// missing holders and non-numeric group labels fall back to empty-string
// and lexical comparison.
func Apply(rows []Row, q Query) []Row {
	out := filterSearch(rows, q.Search)
	out = filterOpenTrade(out, q.OpenTrade)
	out = filterPhase(out, q.Phase)
	sortRows(out, q.Sort)
	return out
}

func filterSearch(rows []Row, search string) []Row {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Account.Holder), needle) ||
			strings.Contains(strings.ToLower(r.Account.Firm), needle) ||
			strings.Contains(strconv.FormatInt(r.Account.ID, 10), needle) {
			out = append(out, r)
		}
	}
	return out
}

func filterOpenTrade(rows []Row, f types.OpenTradeFilter) []Row {
	if f == "" || f == types.OpenTradeFilterAll {
		return rows
	}
	want := f == types.OpenTradeFilterWith
	out := rows[:0]
	for _, r := range rows {
		if r.Account.HasOpenPosition == want {
			out = append(out, r)
		}
	}
	return out
}

func filterPhase(rows []Row, phase string) []Row {
	phase = strings.TrimSpace(phase)
	if phase == "" || strings.EqualFold(phase, "all") {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if strings.EqualFold(r.Account.Phase, phase) {
			out = append(out, r)
		}
	}
	return out
}

func sortRows(rows []Row, mode types.SortMode) {
	switch mode {
	case types.SortModePLDesc:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Metrics.ProfitLoss.GreaterThan(rows[j].Metrics.ProfitLoss)
		})
	case types.SortModePLAsc:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Metrics.ProfitLoss.LessThan(rows[j].Metrics.ProfitLoss)
		})
	case types.SortModeHolderAsc, types.SortModeHolderDesc:
		col := collate.New(language.Und, collate.IgnoreCase)
		asc := mode == types.SortModeHolderAsc
		sort.SliceStable(rows, func(i, j int) bool {
			cmp := col.CompareString(rows[i].Account.Holder, rows[j].Account.Holder)
			if asc {
				return cmp < 0
			}
			return cmp > 0
		})
	default: // VS
		sort.SliceStable(rows, func(i, j int) bool {
			return vsLess(rows[i], rows[j])
		})
	}
}

// vsLess orders grouped accounts first, groups by label (numeric when both
// labels parse, lexical otherwise), then P/L descending inside a group and
// among the ungrouped tail.
func vsLess(a, b Row) bool {
	switch {
	case a.Group != "" && b.Group == "":
		return true
	case a.Group == "" && b.Group != "":
		return false
	case a.Group == "" && b.Group == "":
		return a.Metrics.ProfitLoss.GreaterThan(b.Metrics.ProfitLoss)
	}
	if a.Group != b.Group {
		an, aerr := strconv.Atoi(a.Group)
		bn, berr := strconv.Atoi(b.Group)
		if aerr == nil && berr == nil {
			return an < bn
		}
		return a.Group < b.Group
	}
	return a.Metrics.ProfitLoss.GreaterThan(b.Metrics.ProfitLoss)
}
