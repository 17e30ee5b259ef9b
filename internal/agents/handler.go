package agents

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"propdesk/internal/httputil"
	"propdesk/internal/metrics"
)

type Handler struct {
	exec Executor
}

func NewHandler(exec Executor) *Handler {
	return &Handler{exec: exec}
}

// Open proxies a position-open request to the account's execution agent.
// Each proxied action carries a fresh request id so the hub can dedupe
// retries.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if req.AccountID <= 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "account_id is required"})
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "symbol is required"})
		return
	}
	side := strings.ToLower(strings.TrimSpace(req.Side))
	if side != "buy" && side != "sell" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "side must be buy or sell"})
		return
	}
	req.Side = side
	req.RequestID = uuid.NewString()

	resp, err := h.exec.OpenPosition(r.Context(), req)
	metrics.ObserveTrade("open", err)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadGateway, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	var req CloseRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if req.AccountID <= 0 || strings.TrimSpace(req.PositionID) == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "account_id and position_id are required"})
		return
	}
	req.RequestID = uuid.NewString()

	resp, err := h.exec.ClosePosition(r.Context(), req)
	metrics.ObserveTrade("close", err)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadGateway, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Modify(w http.ResponseWriter, r *http.Request) {
	var req ModifyRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if req.AccountID <= 0 || strings.TrimSpace(req.PositionID) == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "account_id and position_id are required"})
		return
	}
	if req.StopLoss == nil && req.TakeProfit == nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "nothing to modify"})
		return
	}
	req.RequestID = uuid.NewString()

	resp, err := h.exec.ModifyPosition(r.Context(), req)
	metrics.ObserveTrade("modify", err)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadGateway, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
