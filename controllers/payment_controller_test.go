package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce-api/payments"
)

func newPaymentRouter(gateway *payments.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctl := NewPaymentController(gateway, zap.NewNop())
	r.POST("/payments/razorpay/order", ctl.CreateRazorpayOrder)
	return r
}

func TestCreateRazorpayOrderUnconfiguredGateway(t *testing.T) {
	r := newPaymentRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/razorpay/order", strings.NewReader(`{"amount":250}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}

func TestCreateRazorpayOrderRejectsMalformedBody(t *testing.T) {
	gateway, err := payments.NewClient("rzp_test_key", "secret")
	require.NoError(t, err)
	r := newPaymentRouter(gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/razorpay/order", strings.NewReader(`{"amount":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
