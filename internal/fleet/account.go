package fleet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one registry row joined with the latest agent state. Balance
// and HasOpenPosition are whatever the last sync wrote; queries never wait
// for agent I/O.
type Account struct {
	ID              int64           `json:"id"`
	Holder          string          `json:"holder"`
	Firm            string          `json:"firm"`
	Phase           string          `json:"phase"`
	Balance         decimal.Decimal `json:"balance"`
	InitialBalance  decimal.Decimal `json:"initial_balance"`
	HasOpenPosition bool            `json:"has_open_position"`
	ManualGroup     string          `json:"manual_group,omitempty"`
	SyncedAt        time.Time       `json:"synced_at"`
}

// Dedupe collapses repeated ids, keeping the first occurrence of each.
// Upstream merges of agent exports occasionally repeat a login; the first
// record wins and later ones are discarded, not merged. Output order is
// first-seen input order.
func Dedupe(accounts []Account) []Account {
	if len(accounts) == 0 {
		return accounts
	}
	seen := make(map[int64]struct{}, len(accounts))
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
