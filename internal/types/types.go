package types

type SortMode string

type OpenTradeFilter string

type Phase string

type GroupSource string

const (
	SortModeVS         SortMode = "vs"
	SortModePLDesc     SortMode = "pl_desc"
	SortModePLAsc      SortMode = "pl_asc"
	SortModeHolderAsc  SortMode = "holder_asc"
	SortModeHolderDesc SortMode = "holder_desc"
)

const (
	OpenTradeFilterAll     OpenTradeFilter = "all"
	OpenTradeFilterWith    OpenTradeFilter = "with_open"
	OpenTradeFilterWithout OpenTradeFilter = "without_open"
)

// Well-known phases. The field is free-form: agents occasionally report
// firm-specific tags and those pass through untouched.
const (
	PhaseEvaluation   Phase = "evaluation"
	PhaseVerification Phase = "verification"
	PhaseFunded       Phase = "funded"
	PhaseReal         Phase = "real"
)

const (
	GroupSourceAuto   GroupSource = "auto"
	GroupSourceManual GroupSource = "manual"
)

func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortModePLDesc, SortModePLAsc, SortModeHolderAsc, SortModeHolderDesc:
		return SortMode(s)
	default:
		return SortModeVS
	}
}

func ParseOpenTradeFilter(s string) OpenTradeFilter {
	switch OpenTradeFilter(s) {
	case OpenTradeFilterWith, OpenTradeFilterWithout:
		return OpenTradeFilter(s)
	default:
		return OpenTradeFilterAll
	}
}
