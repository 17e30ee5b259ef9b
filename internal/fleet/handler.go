package fleet

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"propdesk/internal/httputil"
	"propdesk/internal/risk"
)

type Handler struct {
	store  *Store
	params risk.Params
}

func NewHandler(store *Store, params risk.Params) *Handler {
	return &Handler{store: store, params: params}
}

// Register onboards or updates an account's registry fields. Reached via
// the internal API only; the roster comes from ops tooling, not operators.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID             int64           `json:"id"`
		Holder         string          `json:"holder"`
		Firm           string          `json:"firm"`
		Phase          string          `json:"phase"`
		InitialBalance decimal.Decimal `json:"initial_balance"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	a := Account{
		ID:             req.ID,
		Holder:         req.Holder,
		Firm:           req.Firm,
		Phase:          req.Phase,
		InitialBalance: req.InitialBalance,
	}
	if err := h.store.Register(r.Context(), a); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

// Get serves a single account with its computed metrics. The detail pane
// reads this; group labels are a fleet-level concept and are not included.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid account id"})
		return
	}
	a, err := h.store.Get(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if err.Error() == "account not found" {
			status = http.StatusNotFound
		}
		httputil.WriteJSON(w, status, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	initial := h.params.ResolveInitialBalance(a.InitialBalance)
	httputil.WriteJSON(w, http.StatusOK, struct {
		Account Account      `json:"account"`
		Metrics risk.Metrics `json:"metrics"`
	}{Account: *a, Metrics: h.params.Compute(a.Balance, initial)})
}

// Phases serves the distinct phase tags for the dashboard filter.
func (h *Handler) Phases(w http.ResponseWriter, r *http.Request) {
	phases, err := h.store.Phases(r.Context())
	if err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if phases == nil {
		phases = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, phases)
}
