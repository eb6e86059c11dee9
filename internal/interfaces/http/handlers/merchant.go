// internal/interfaces/http/handlers/merchant.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/resource"
	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// MerchantHandler serves the merchant back-office tables
type MerchantHandler struct {
	products *resource.Controller[catalog.Product]
	orders   *resource.Controller[catalog.Order]
	log      *logrus.Logger
}

// NewMerchantHandler creates the merchant handler
func NewMerchantHandler(api *apiclient.Client, log *logrus.Logger) *MerchantHandler {
	return &MerchantHandler{
		products: resource.NewController[catalog.Product](api, "products", log),
		orders:   resource.NewController[catalog.Order](api, "orders", log),
		log:      log,
	}
}

// Dashboard handles GET /merchant
func (h *MerchantHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "merchant-dashboard"})
}

// ListProducts handles GET /merchant/products
func (h *MerchantHandler) ListProducts(c *gin.Context) {
	listTable(c, h.products, resource.Filters{
		"search": c.Query("search"),
		"status": c.Query("status"),
	})
}

// CreateProduct handles POST /merchant/products
func (h *MerchantHandler) CreateProduct(c *gin.Context) {
	createRecord(c, h.products, productPayloadExclusions...)
}

// UpdateProduct handles PUT /merchant/products/:id
func (h *MerchantHandler) UpdateProduct(c *gin.Context) {
	updateRecord(c, h.products, productPayloadExclusions...)
}

// DeleteProduct handles DELETE /merchant/products/:id
func (h *MerchantHandler) DeleteProduct(c *gin.Context) {
	deleteRecord(c, h.products)
}

// ListOrders handles GET /merchant/orders
func (h *MerchantHandler) ListOrders(c *gin.Context) {
	listTable(c, h.orders, resource.Filters{
		"search": c.Query("search"),
		"status": c.Query("status"),
	})
}
