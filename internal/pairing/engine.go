package pairing

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"propdesk/internal/fleet"
	"propdesk/internal/risk"
)

// Engine auto-assigns VS groups: two accounts with similar P/L, both far
// enough from a payout or failure event, are labelled as a pair so the desk
// can treat them as operationally offsetting.
type Engine struct {
	params risk.Params
}

func NewEngine(params risk.Params) *Engine {
	return &Engine{params: params}
}

type candidate struct {
	id       int64
	pl       decimal.Decimal
	assigned bool
}

// Assign returns a map from account id to group label. Accounts outside
// the safe band get no label at all; with an odd eligible count exactly one
// account is left unpaired.
//
// The procedure sorts eligible accounts by P/L and then repeatedly pairs
// the two unassigned neighbors with the smallest gap, labelling pairs with
// sequential integers from 1. Greedy over a sorted list approximates a
// minimum-total-difference matching without combinatorial search; fleet
// sizes are small and near-sorted proximity is what the desk cares about.
// Known heuristic, not a bug; do not replace with an optimal matching
// without changing the desk's expectations. Deterministic for a fixed
// input order: gap ties go to the leftmost pair.
func (e *Engine) Assign(accounts []fleet.Account) map[int64]string {
	cands := make([]candidate, 0, len(accounts))
	for _, a := range accounts {
		initial := e.params.ResolveInitialBalance(a.InitialBalance)
		m := e.params.Compute(a.Balance, initial)
		if !e.params.Eligible(m.ProfitPercentage) {
			continue
		}
		cands = append(cands, candidate{id: a.ID, pl: m.ProfitLoss})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].pl.LessThan(cands[j].pl)
	})

	groups := make(map[int64]string, len(cands))
	next := 1
	for remaining := len(cands); remaining >= 2; remaining -= 2 {
		bestLeft, bestRight := -1, -1
		var bestGap decimal.Decimal
		prev := -1
		for i := range cands {
			if cands[i].assigned {
				continue
			}
			if prev >= 0 {
				gap := cands[i].pl.Sub(cands[prev].pl)
				if bestLeft == -1 || gap.LessThan(bestGap) {
					bestLeft, bestRight = prev, i
					bestGap = gap
				}
			}
			prev = i
		}
		if bestLeft == -1 {
			break
		}
		label := strconv.Itoa(next)
		next++
		cands[bestLeft].assigned = true
		cands[bestRight].assigned = true
		groups[cands[bestLeft].id] = label
		groups[cands[bestRight].id] = label
	}
	return groups
}
