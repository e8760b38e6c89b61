// Package metrics holds the prometheus collectors of the fuel service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fuel_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	TankStockLiters = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fuel_tank_stock_liters",
			Help: "Current stock of a tank in liters",
		},
		[]string{"tank_id", "tank"},
	)

	TankFillPercentage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fuel_tank_fill_percentage",
			Help: "Fill level of a tank in percent of its capacity",
		},
		[]string{"tank_id", "tank"},
	)

	RefuelingTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuel_refueling_transitions_total",
			Help: "Refueling status transitions by target status",
		},
		[]string{"to"},
	)

	ReceiptsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuel_receipts_created_total",
			Help: "Fuel receipts created by source",
		},
		[]string{"source"},
	)

	ReceivingLinesDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fuel_receiving_lines_dropped_total",
			Help: "Fuel lines of validated receiving documents dropped for lack of an active tank",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TankStockLiters,
		TankFillPercentage,
		RefuelingTransitionsTotal,
		ReceiptsCreatedTotal,
		ReceivingLinesDroppedTotal,
	)
}

// ObserveTank publishes the levels of a tank.
func ObserveTank(id uint, name string, stock, fill decimal.Decimal) {
	labels := prometheus.Labels{"tank_id": strconv.FormatUint(uint64(id), 10), "tank": name}
	TankStockLiters.With(labels).Set(stock.InexactFloat64())
	TankFillPercentage.With(labels).Set(fill.InexactFloat64())
}

// ForgetTank drops the gauges of a deleted tank.
func ForgetTank(id uint, name string) {
	labels := prometheus.Labels{"tank_id": strconv.FormatUint(uint64(id), 10), "tank": name}
	TankStockLiters.Delete(labels)
	TankFillPercentage.Delete(labels)
}
