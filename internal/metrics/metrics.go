package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_message_events_total",
		Help: "Inbound message-source events (new + edited).",
	})
	SignalsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_signals_parsed_total",
		Help: "Messages that produced a valid trade signal.",
	})
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_orders_placed_total",
		Help: "Successfully placed market orders.",
	})
	OrdersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_orders_failed_total",
		Help: "Placement attempts rejected by the gateway.",
	})
	AdmissionRefused = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_admission_refused_total",
		Help: "Placement attempts stopped by admission control.",
	})
	BreakEvens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_break_evens_total",
		Help: "Break-even stop moves triggered by monitors.",
	})
	ReversalCloses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_reversal_closes_total",
		Help: "Positions force-closed on adverse reversal.",
	})
	Amendments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bot_amendments_total",
		Help: "SL/TP amendments driven by message edits.",
	})
	OpenPositions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signal_bot_open_positions",
		Help: "Tickets currently mirrored as open.",
	})
)
