package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTP(reg, "test")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/jerseys/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jerseys/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/jerseys/:id", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight))
}

func TestBusinessCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := NewBusiness(reg, "test")

	b.CartItemAdded(1, 3)
	b.OrderCreated(29500, 2, "cart")
	b.PaymentCompleted("card", 29500)
	b.PaymentCompleted(" Credit Card ", 0)
	b.PaymentCompleted("x-7f3a-unique", 0)
	b.PaymentCompleted("another-made-up", 0)
	b.PaymentRejected("duplicate")

	assert.Equal(t, 3.0, testutil.ToFloat64(b.cartItemsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.ordersCreated.WithLabelValues("cart")))
	assert.Equal(t, 295.0, testutil.ToFloat64(b.revenue))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.paymentsRejected.WithLabelValues("duplicate")))

	assert.Equal(t, 1.0, testutil.ToFloat64(b.paymentsSettled.WithLabelValues("card")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.paymentsSettled.WithLabelValues("credit_card")))
	assert.Equal(t, 2.0, testutil.ToFloat64(b.paymentsSettled.WithLabelValues("other")))
	assert.Equal(t, 3, testutil.CollectAndCount(b.paymentsSettled), "free text must not create label values")
}

func TestHandlerExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewBusiness(reg, "test").CartItemAdded(1, 1)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "test_business_cart_items_added_total 1"))
}
