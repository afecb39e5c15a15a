package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// swapd_quotes_total
	//
	// counter that measures the number of quotes computed
	//
	// Has the following labels:
	// * source - the rate source used
	SwapdQuotesTotalMetricName = "swapd_quotes_total"

	// swapd_quote_errors_total
	//
	// counter that measures the number of quote requests that failed
	SwapdQuoteErrorsTotalMetricName = "swapd_quote_errors_total"

	// swapd_swaps_total
	//
	// counter that measures the number of swap orders reaching a final state
	//
	// Has the following labels:
	// * status - settled or rejected
	SwapdSwapsTotalMetricName = "swapd_swaps_total"

	// swapd_swap_settlement_duration_seconds
	//
	// histogram of the time between submission and settlement
	SwapdSwapSettlementDurationMetricName = "swapd_swap_settlement_duration_seconds"

	// swapd_swaps_in_flight
	//
	// gauge of swaps currently waiting for settlement
	SwapdSwapsInFlightMetricName = "swapd_swaps_in_flight"

	// swapd_connected_wallets
	//
	// gauge of currently connected wallet sessions
	SwapdConnectedWalletsMetricName = "swapd_connected_wallets"

	// swapd_event_sink_errors_total
	//
	// counter that measures the number of events a sink failed to deliver
	//
	// Has the following labels:
	// * sink - the sink name
	SwapdEventSinkErrorsTotalMetricName = "swapd_event_sink_errors_total"

	// swapd_events_dropped_total
	//
	// counter that measures the number of events dropped because a sink queue was full
	//
	// Has the following labels:
	// * sink - the sink name
	SwapdEventsDroppedTotalMetricName = "swapd_events_dropped_total"

	SwapdQuotesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SwapdQuotesTotalMetricName,
			Help: "counter that measures the number of quotes computed",
		},
		[]string{"source"},
	)

	SwapdQuoteErrorsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SwapdQuoteErrorsTotalMetricName,
			Help: "counter that measures the number of quote requests that failed",
		},
	)

	SwapdSwapsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SwapdSwapsTotalMetricName,
			Help: "counter that measures the number of swap orders reaching a final state",
		},
		[]string{"status"},
	)

	SwapdSwapSettlementDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    SwapdSwapSettlementDurationMetricName,
			Help:    "histogram of the time between submission and settlement",
			Buckets: []float64{0.1, 0.5, 1, 1.5, 2, 2.5, 3, 5},
		},
	)

	SwapdSwapsInFlightGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: SwapdSwapsInFlightMetricName,
			Help: "gauge of swaps currently waiting for settlement",
		},
	)

	SwapdConnectedWalletsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: SwapdConnectedWalletsMetricName,
			Help: "gauge of currently connected wallet sessions",
		},
	)

	SwapdEventSinkErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SwapdEventSinkErrorsTotalMetricName,
			Help: "counter that measures the number of events a sink failed to deliver",
		},
		[]string{"sink"},
	)

	SwapdEventsDroppedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SwapdEventsDroppedTotalMetricName,
			Help: "counter that measures the number of events dropped because a sink queue was full",
		},
		[]string{"sink"},
	)
)

func init() {
	prometheus.MustRegister(SwapdQuotesCounter)
	prometheus.MustRegister(SwapdQuoteErrorsCounter)
	prometheus.MustRegister(SwapdSwapsCounter)
	prometheus.MustRegister(SwapdSwapSettlementDurationHistogram)
	prometheus.MustRegister(SwapdSwapsInFlightGauge)
	prometheus.MustRegister(SwapdConnectedWalletsGauge)
	prometheus.MustRegister(SwapdEventSinkErrorsCounter)
	prometheus.MustRegister(SwapdEventsDroppedCounter)
}
