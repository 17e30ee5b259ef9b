package pairing

import (
	"strings"

	"propdesk/internal/fleet"
)

// Merge composes auto assignments with persisted manual overrides. A
// non-empty manual group always wins; empty and absent are the same thing
// (clearing an override upstream writes an empty value). Accounts with
// neither are absent from the result.
func Merge(accounts []fleet.Account, auto map[int64]string) map[int64]string {
	merged := make(map[int64]string, len(auto))
	for _, a := range accounts {
		if manual := strings.TrimSpace(a.ManualGroup); manual != "" {
			merged[a.ID] = manual
			continue
		}
		if label, ok := auto[a.ID]; ok {
			merged[a.ID] = label
		}
	}
	return merged
}
