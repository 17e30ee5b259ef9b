package recon

import (
	"net/http"

	"propdesk/internal/httputil"
	"propdesk/internal/types"
	"propdesk/internal/view"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Fleet serves the reconciled, ordered account view.
// Query params: search, open (all|with_open|without_open), phase, sort
// (vs|pl_desc|pl_asc|holder_asc|holder_desc). Unknown values fall back to
// the defaults rather than erroring.
func (h *Handler) Fleet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := view.Query{
		Search:    params.Get("search"),
		OpenTrade: types.ParseOpenTradeFilter(params.Get("open")),
		Phase:     params.Get("phase"),
		Sort:      types.ParseSortMode(params.Get("sort")),
	}
	rows, err := h.svc.Build(r.Context(), q)
	if err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if rows == nil {
		rows = []view.Row{}
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}
