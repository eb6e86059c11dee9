// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/resource"
	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// productPayloadExclusions are the server-owned product fields stripped from
// create/update payloads on top of the standard id/timestamp set.
var productPayloadExclusions = []string{"category", "merchant", "averageRating", "reviewCount"}

// AdminHandler serves the admin back-office CRUD tables
type AdminHandler struct {
	api       *apiclient.Client
	products  *resource.Controller[catalog.Product]
	users     *resource.Controller[catalog.User]
	orders    *resource.Controller[catalog.Order]
	merchants *resource.Controller[catalog.Merchant]
	log       *logrus.Logger
}

// NewAdminHandler creates the admin handler with one controller per table
func NewAdminHandler(api *apiclient.Client, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		api:       api,
		products:  resource.NewController[catalog.Product](api, "products", log),
		users:     resource.NewController[catalog.User](api, "users", log),
		orders:    resource.NewController[catalog.Order](api, "orders/all", log),
		merchants: resource.NewController[catalog.Merchant](api, "merchants", log),
		log:       log,
	}
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "admin-dashboard"})
}

// Products table

func (h *AdminHandler) ListProducts(c *gin.Context) {
	listTable(c, h.products, resource.Filters{
		"search":     c.Query("search"),
		"categoryId": c.Query("categoryId"),
		"minPrice":   c.Query("minPrice"),
		"maxPrice":   c.Query("maxPrice"),
		"status":     c.Query("status"),
	})
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	createRecord(c, h.products, productPayloadExclusions...)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	updateRecord(c, h.products, productPayloadExclusions...)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	deleteRecord(c, h.products)
}

// Users table

func (h *AdminHandler) ListUsers(c *gin.Context) {
	listTable(c, h.users, resource.Filters{"search": c.Query("search")})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	createRecord(c, h.users, "roles")
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	updateRecord(c, h.users, "roles")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	deleteRecord(c, h.users)
}

// Orders table: listed from the all-orders endpoint; the only mutation is a
// status change through the dedicated status endpoint.

func (h *AdminHandler) ListOrders(c *gin.Context) {
	listTable(c, h.orders, resource.Filters{
		"search": c.Query("search"),
		"status": c.Query("status"),
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status payload"})
		return
	}

	path := "orders/" + c.Param("id") + "/status"
	if err := h.api.Do(c.Request.Context(), http.MethodPut, path, gin.H{"status": req.Status}, nil); err != nil {
		h.log.WithError(err).Error("Order status update failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

// Merchants table

func (h *AdminHandler) ListMerchants(c *gin.Context) {
	listTable(c, h.merchants, resource.Filters{
		"search": c.Query("search"),
		"status": c.Query("status"),
	})
}

func (h *AdminHandler) CreateMerchant(c *gin.Context) {
	createRecord(c, h.merchants)
}

func (h *AdminHandler) UpdateMerchant(c *gin.Context) {
	updateRecord(c, h.merchants)
}

func (h *AdminHandler) DeleteMerchant(c *gin.Context) {
	deleteRecord(c, h.merchants)
}

// Shared table plumbing

// listTable runs a paginated fetch and renders the applied page. A stale
// response answers with the state of the most recent fetch instead.
func listTable[T any](c *gin.Context, controller *resource.Controller[T], filters resource.Filters) {
	page, limit := pagination(c)

	records, meta, err := controller.List(c.Request.Context(), page, limit, filters)
	if errors.Is(err, resource.ErrStale) {
		records, meta = controller.Records(), controller.Meta()
	} else if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records, "meta": meta})
}

// createRecord strips server-owned fields from the draft and creates it
func createRecord[T any](c *gin.Context, controller *resource.Controller[T], exclusions ...string) {
	var draft resource.Record
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record payload"})
		return
	}

	if err := controller.Create(c.Request.Context(), resource.SanitizePayload(draft, exclusions...)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": controller.Records(), "meta": controller.Meta()})
}

// updateRecord strips server-owned fields from the draft and updates it
func updateRecord[T any](c *gin.Context, controller *resource.Controller[T], exclusions ...string) {
	var draft resource.Record
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record payload"})
		return
	}

	if err := controller.Update(c.Request.Context(), c.Param("id"), resource.SanitizePayload(draft, exclusions...)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": controller.Records(), "meta": controller.Meta()})
}

// deleteRecord removes a record; the confirm query parameter is the explicit
// user confirmation step.
func deleteRecord[T any](c *gin.Context, controller *resource.Controller[T]) {
	confirmed := c.Query("confirm") == "true"

	err := controller.Remove(c.Request.Context(), c.Param("id"), confirmed)
	if errors.Is(err, resource.ErrNotConfirmed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion requires confirmation"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": controller.Records(), "meta": controller.Meta()})
}
