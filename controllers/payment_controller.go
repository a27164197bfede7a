package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecommerce-api/payments"
)

type PaymentController struct {
	gateway *payments.Client
	logger  *zap.Logger
}

// NewPaymentController accepts a nil gateway: the route then answers 503
// until the operator supplies Razorpay credentials.
func NewPaymentController(gateway *payments.Client, logger *zap.Logger) *PaymentController {
	return &PaymentController{gateway: gateway, logger: logger}
}

type createPaymentOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

// CreateRazorpayOrder creates a gateway order for the (clamped) amount and
// returns it together with the public key id. Nothing is persisted locally;
// the storefront attaches the resulting references when it creates the order.
func (ctl *PaymentController) CreateRazorpayOrder(c *gin.Context) {
	if ctl.gateway == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway is not configured"})
		return
	}

	var req createPaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.gateway.CreateOrder(req.Amount, req.Currency, req.Receipt)
	if err != nil {
		ctl.logger.Error("razorpay order creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "keyId": ctl.gateway.KeyID()})
}
