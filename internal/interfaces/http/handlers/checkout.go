// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/checkout"
)

// CheckoutHandler turns the current cart into an order
type CheckoutHandler struct {
	checkout *checkout.Service
}

// NewCheckoutHandler creates the checkout handler
func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: service}
}

// PlaceOrderRequest is the checkout form payload
type PlaceOrderRequest struct {
	ShippingAddress checkout.Address `json:"shippingAddress" binding:"required"`
	BillingAddress  checkout.Address `json:"billingAddress" binding:"required"`
	PaymentMethod   string           `json:"paymentMethod" binding:"required"`
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout payload"})
		return
	}

	confirmation, err := h.checkout.PlaceOrder(c.Request.Context(), req.ShippingAddress, req.BillingAddress, req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": confirmation})
}
