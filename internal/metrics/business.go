package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"jerseyshop/internal/domain"
)

// Recorder receives checkout events from the services.
type Recorder interface {
	CartItemAdded(jerseyID int64, quantity int)
	OrderCreated(total domain.Cents, items int, source string)
	PaymentCompleted(method string, amount domain.Cents)
	PaymentRejected(reason string)
}

// Nop discards every event.
type Nop struct{}

func (Nop) CartItemAdded(int64, int)               {}
func (Nop) OrderCreated(domain.Cents, int, string) {}
func (Nop) PaymentCompleted(string, domain.Cents)  {}
func (Nop) PaymentRejected(string)                 {}

// Business counts cart, order and payment events.
type Business struct {
	cartItemsAdded   prometheus.Counter
	ordersCreated    *prometheus.CounterVec
	orderValue       prometheus.Histogram
	orderItemCount   prometheus.Histogram
	paymentsSettled  *prometheus.CounterVec
	paymentsRejected *prometheus.CounterVec
	revenue          prometheus.Counter
}

func NewBusiness(reg prometheus.Registerer, namespace string) *Business {
	if namespace == "" {
		namespace = "jerseyshop"
	}
	const subsystem = "business"
	b := &Business{
		cartItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_items_added_total",
			Help:      "Total jersey units added to carts",
		}),
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_created_total",
			Help:      "Total orders created",
		}, []string{"source"}), // source: cart, items
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value",
			Help:      "Order totals in currency units",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		orderItemCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_item_count",
			Help:      "Distinct lines per order",
			Buckets:   []float64{1, 2, 3, 5, 10, 20},
		}),
		paymentsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payments_completed_total",
			Help:      "Total completed payments",
		}, []string{"method"}), // method: see paymentMethods, anything else is "other"
		paymentsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payments_rejected_total",
			Help:      "Total payment attempts refused",
		}, []string{"reason"}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "revenue_collected_total",
			Help:      "Revenue from completed payments in currency units",
		}),
	}
	reg.MustRegister(
		b.cartItemsAdded,
		b.ordersCreated,
		b.orderValue,
		b.orderItemCount,
		b.paymentsSettled,
		b.paymentsRejected,
		b.revenue,
	)
	return b
}

func (b *Business) CartItemAdded(_ int64, quantity int) {
	b.cartItemsAdded.Add(float64(quantity))
}

func (b *Business) OrderCreated(total domain.Cents, items int, source string) {
	b.ordersCreated.WithLabelValues(source).Inc()
	b.orderValue.Observe(total.Decimal().InexactFloat64())
	b.orderItemCount.Observe(float64(items))
}

// paymentMethods are the method labels recorded as-is. The method is free
// text from the client.
var paymentMethods = map[string]struct{}{
	"card":          {},
	"credit_card":   {},
	"debit_card":    {},
	"paypal":        {},
	"bank_transfer": {},
	"wallet":        {},
	"upi":           {},
	"cash":          {},
}

func methodLabel(method string) string {
	m := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(method)), "-", "_")
	m = strings.ReplaceAll(m, " ", "_")
	if _, ok := paymentMethods[m]; ok {
		return m
	}
	return "other"
}

func (b *Business) PaymentCompleted(method string, amount domain.Cents) {
	b.paymentsSettled.WithLabelValues(methodLabel(method)).Inc()
	b.revenue.Add(amount.Decimal().InexactFloat64())
}

func (b *Business) PaymentRejected(reason string) {
	b.paymentsRejected.WithLabelValues(reason).Inc()
}
