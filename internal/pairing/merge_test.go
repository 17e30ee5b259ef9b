package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propdesk/internal/fleet"
)

func TestMerge_ManualOverrideWins(t *testing.T) {
	accounts := []fleet.Account{
		{ID: 1, ManualGroup: "Z"},
		{ID: 2},
	}
	auto := map[int64]string{1: "1", 2: "1"}
	merged := Merge(accounts, auto)

	assert.Equal(t, "Z", merged[1])
	assert.Equal(t, "1", merged[2])
}

func TestMerge_AutoOnlyWhenNoManual(t *testing.T) {
	accounts := []fleet.Account{
		{ID: 1},
		{ID: 2, ManualGroup: "team-a"},
		{ID: 3},
	}
	auto := map[int64]string{1: "1"}
	merged := Merge(accounts, auto)

	assert.Equal(t, "1", merged[1])
	assert.Equal(t, "team-a", merged[2])
	assert.NotContains(t, merged, int64(3))
}

func TestMerge_WhitespaceManualIgnored(t *testing.T) {
	accounts := []fleet.Account{
		{ID: 1, ManualGroup: "   "},
		{ID: 2, ManualGroup: ""},
	}
	auto := map[int64]string{1: "4"}
	merged := Merge(accounts, auto)

	assert.Equal(t, "4", merged[1])
	assert.NotContains(t, merged, int64(2))
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
	assert.Empty(t, Merge([]fleet.Account{{ID: 1}}, map[int64]string{}))
}
