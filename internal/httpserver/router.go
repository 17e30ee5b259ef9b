package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"propdesk/internal/agents"
	"propdesk/internal/auth"
	"propdesk/internal/fleet"
	"propdesk/internal/health"
	"propdesk/internal/httputil"
	"propdesk/internal/overrides"
	"propdesk/internal/recon"
)

type RouterDeps struct {
	AuthHandler      *auth.Handler
	ReconHandler     *recon.Handler
	FleetHandler     *fleet.Handler
	OverridesHandler *overrides.Handler
	TradeHandler     *agents.Handler
	HealthHandler    *health.Handler
	MetricsHandler   http.Handler
	SyncTrigger      http.HandlerFunc
	AuthService      *auth.Service
	InternalToken    string
	Log              zerolog.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(d.Log))
	r.Use(SecurityHeaders)
	r.Use(RateLimitMiddleware)

	r.Get("/health/live", d.HealthHandler.Live)
	r.Get("/health/ready", d.HealthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", d.MetricsHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", d.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(WithAuth(d.AuthService))
			r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
				operatorID, ok := OperatorID(r)
				if !ok {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "unauthorized"})
					return
				}
				d.AuthHandler.Me(w, r, operatorID)
			})
			r.Get("/fleet", d.ReconHandler.Fleet)
			r.Get("/fleet/phases", d.FleetHandler.Phases)
			r.Get("/fleet/{id}", d.FleetHandler.Get)
			r.Put("/fleet/{id}/group", d.OverridesHandler.SetGroup)
			r.Put("/fleet/{id}/phase", d.OverridesHandler.SetPhase)
			r.Post("/trade/open", d.TradeHandler.Open)
			r.Post("/trade/close", d.TradeHandler.Close)
			r.Post("/trade/modify", d.TradeHandler.Modify)
		})

		r.Group(func(r chi.Router) {
			r.Use(InternalAuth(d.InternalToken))
			r.Post("/internal/accounts", d.FleetHandler.Register)
			r.Post("/internal/sync", d.SyncTrigger)
		})
	})

	return r
}
