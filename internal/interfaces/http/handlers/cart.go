// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
)

// CartHandler serves the cart page and its mutations
type CartHandler struct {
	cart *cart.Store
}

// NewCartHandler creates the cart handler
func NewCartHandler(cartStore *cart.Store) *CartHandler {
	return &CartHandler{cart: cartStore}
}

// AddItemRequest is the add-to-cart payload from a product page
type AddItemRequest struct {
	Product  cart.Product  `json:"product" binding:"required"`
	Quantity int           `json:"quantity"`
	Variant  *cart.Variant `json:"variant"`
}

// UpdateItemRequest is the quantity update payload
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	h.renderCart(c, http.StatusOK)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item payload"})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	if err := h.cart.AddItem(c.Request.Context(), req.Product, req.Quantity, req.Variant); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	h.renderCart(c, http.StatusCreated)
}

// UpdateItem handles PUT /cart/items/:id, keyed by the local item id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity payload"})
		return
	}

	if err := h.cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	h.renderCart(c, http.StatusOK)
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.cart.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	h.renderCart(c, http.StatusOK)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	h.renderCart(c, http.StatusOK)
}

func (h *CartHandler) renderCart(c *gin.Context, status int) {
	c.JSON(status, gin.H{
		"items":      h.cart.Items(),
		"totalItems": h.cart.TotalItems(),
		"totalPrice": h.cart.TotalPrice(),
	})
}
