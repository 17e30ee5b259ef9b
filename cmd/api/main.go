package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propdesk/internal/agents"
	"propdesk/internal/auth"
	"propdesk/internal/config"
	"propdesk/internal/db"
	"propdesk/internal/fleet"
	"propdesk/internal/health"
	"propdesk/internal/httpserver"
	"propdesk/internal/metrics"
	"propdesk/internal/overrides"
	"propdesk/internal/recon"
	"propdesk/internal/refresh"
	"propdesk/internal/risk"

	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	params := risk.Params{
		ProfitTargetPct:       cfg.ProfitTargetPct,
		MaxLossPct:            cfg.MaxLossPct,
		BufferCap:             cfg.BufferCap,
		DefaultInitialBalance: cfg.DefaultInitialBalance,
	}

	fleetStore := fleet.NewStore(pool)
	overrideStore := overrides.NewStore(pool)
	reconSvc := recon.NewService(fleetStore, params, log)
	authSvc := auth.NewService(pool, cfg.JWTIssuer, []byte(cfg.JWTSecret), cfg.JWTTTL)

	agentClient := agents.NewClient(cfg.AgentHubURL, cfg.AgentToken, cfg.AgentTimeout, log)
	var executor agents.Executor = agentClient
	if !cfg.TradingEnabled {
		executor = agents.NewDisabledExecutor()
		log.Warn().Msg("trade execution disabled; proxy will reject actions")
	}

	syncer := refresh.NewSyncer(agentClient, fleetStore, cfg.AgentTimeout, log)
	scheduler := refresh.NewScheduler(log)
	if err := scheduler.AddJob(cfg.SyncSchedule, syncer); err != nil {
		log.Fatal().Err(err).Msg("register sync job")
	}
	scheduler.Start()
	defer scheduler.Stop()

	feedCtx, cancelFeed := context.WithCancel(ctx)
	defer cancelFeed()
	if cfg.AgentFeedURL != "" {
		feed := agents.NewFeed(cfg.AgentFeedURL, cfg.AgentToken, fleetStore.ApplyState, log)
		go feed.Run(feedCtx)
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandler:      auth.NewHandler(authSvc),
		ReconHandler:     recon.NewHandler(reconSvc),
		FleetHandler:     fleet.NewHandler(fleetStore, params),
		OverridesHandler: overrides.NewHandler(overrideStore),
		TradeHandler:     agents.NewHandler(executor),
		HealthHandler:    health.NewHandler(pool, time.Now()),
		MetricsHandler:   metrics.Handler(),
		SyncTrigger:      syncer.TriggerHandler,
		AuthService:      authSvc,
		InternalToken:    cfg.InternalToken,
		Log:              log,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancelFeed()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
