package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaar_orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaar_orders_failed_total",
		Help: "Total number of rejected checkouts",
	}, []string{"reason"})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaar_order_status_changes_total",
		Help: "Total number of accepted order status transitions",
	}, []string{"status"})

	PaymentsInitializedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaar_payments_initialized_total",
		Help: "Total number of payments initialized",
	}, []string{"method"})

	CartAddsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaar_cart_adds_total",
		Help: "Total number of add-to-cart operations",
	})

	ReviewsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaar_reviews_created_total",
		Help: "Total number of product reviews created",
	})
)

// Serve exposes /metrics on its own listener so the scrape endpoint stays
// off the public API port.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
