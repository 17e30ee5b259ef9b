package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fleetAccounts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "propdesk_fleet_accounts",
			Help: "Accounts in the last reconciled snapshot.",
		},
	)

	autoPairs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "propdesk_auto_pairs",
			Help: "VS pairs produced by the last auto-pairing pass.",
		},
	)

	groupedAccounts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "propdesk_grouped_accounts",
			Help: "Accounts with a merged group label (auto or manual).",
		},
	)

	reconPasses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "propdesk_recon_passes_total",
			Help: "Reconciliation passes served.",
		},
	)

	syncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propdesk_sync_runs_total",
			Help: "Agent state sync runs by result.",
		},
		[]string{"result"}, // ok|error
	)

	tradeProxied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propdesk_trades_proxied_total",
			Help: "Trade actions proxied to execution agents.",
		},
		[]string{"action", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		fleetAccounts,
		autoPairs,
		groupedAccounts,
		reconPasses,
		syncRuns,
		tradeProxied,
	)
}

func ObserveRecon(accounts, pairs, grouped int) {
	fleetAccounts.Set(float64(accounts))
	autoPairs.Set(float64(pairs))
	groupedAccounts.Set(float64(grouped))
	reconPasses.Inc()
}

func ObserveSync(err error) {
	if err != nil {
		syncRuns.WithLabelValues("error").Inc()
		return
	}
	syncRuns.WithLabelValues("ok").Inc()
}

func ObserveTrade(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	tradeProxied.WithLabelValues(action, result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
