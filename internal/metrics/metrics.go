// Package metrics defines the Prometheus collectors for Bookbill.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BillsCommitted counts successfully committed bills.
	BillsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookbill_bills_committed_total",
		Help: "Number of bills committed.",
	})

	// StockDecrements counts stock-decrement requests issued during
	// reconciliation, by outcome (applied, failed).
	StockDecrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookbill_stock_decrements_total",
		Help: "Stock-decrement requests issued during reconciliation.",
	}, []string{"outcome"})

	// OversellClamped counts decrements that would have driven stock
	// negative and were clamped to zero instead.
	OversellClamped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookbill_oversell_clamped_total",
		Help: "Stock decrements clamped at zero because the bill oversold the on-hand quantity.",
	})

	// RequestDuration observes HTTP handler latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookbill_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
