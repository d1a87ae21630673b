// Package metrics exposes the relay's Prometheus instrumentation.
// Collectors are registered once at init; the rest of the codebase only
// touches the helper functions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	contractRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_contract_refresh_total",
			Help: "Lot-size contract file refresh attempts, by result (ok|error).",
		},
		[]string{"result"},
	)

	contractSymbols = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_contract_symbols",
			Help: "Symbols in the currently loaded lot-size table.",
		},
	)

	contractLoadedAt = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_contract_loaded_timestamp_seconds",
			Help: "Unix time the lot-size table was last loaded.",
		},
	)

	lotLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_lot_lookups_total",
			Help: "Lot-size lookups, by outcome (hit|miss|error).",
		},
		[]string{"outcome"},
	)

	brokerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_broker_requests_total",
			Help: "Broker API requests, by endpoint path and result (ok|error).",
		},
		[]string{"endpoint", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		contractRefreshes,
		contractSymbols,
		contractLoadedAt,
		lotLookups,
		brokerRequests,
	)
}

// Handler returns the exposition handler mounted at /metrics.
func Handler() http.Handler { return promhttp.Handler() }

func IncContractRefresh(result string) { contractRefreshes.WithLabelValues(result).Inc() }

func SetContractSymbols(n int) { contractSymbols.Set(float64(n)) }

func SetContractLoadedAt(t time.Time) { contractLoadedAt.Set(float64(t.Unix())) }

func IncLotLookup(outcome string) { lotLookups.WithLabelValues(outcome).Inc() }

func IncBrokerRequest(endpoint, result string) {
	brokerRequests.WithLabelValues(endpoint, result).Inc()
}
