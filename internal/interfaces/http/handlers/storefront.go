// internal/interfaces/http/handlers/storefront.go
package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/resource"
	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// StorefrontHandler serves the public shopping pages
type StorefrontHandler struct {
	api      *apiclient.Client
	products *resource.Controller[catalog.Product]
	log      *logrus.Logger
}

// NewStorefrontHandler creates the storefront handler
func NewStorefrontHandler(api *apiclient.Client, log *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		api:      api,
		products: resource.NewController[catalog.Product](api, "products", log),
		log:      log,
	}
}

// Home handles GET /: a small featured-product selection
func (h *StorefrontHandler) Home(c *gin.Context) {
	featured, _, err := h.products.List(c.Request.Context(), 1, 8, nil)
	if err != nil {
		// The home page renders without featured products rather than failing
		featured = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     "home",
		"featured": featured,
	})
}

// Products handles GET /products: the paginated, filtered catalog listing
func (h *StorefrontHandler) Products(c *gin.Context) {
	page, limit := pagination(c)
	filters := resource.Filters{
		"search":     c.Query("search"),
		"categoryId": c.Query("categoryId"),
		"minPrice":   c.Query("minPrice"),
		"maxPrice":   c.Query("maxPrice"),
		"status":     c.Query("status"),
	}

	records, meta, err := h.products.List(c.Request.Context(), page, limit, filters)
	if errors.Is(err, resource.ErrStale) {
		// A newer fetch superseded this one; answer with the applied state
		records, meta = h.products.Records(), h.products.Meta()
	} else if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records, "meta": meta})
}

// ProductDetail handles GET /products/:id. A missing product renders a
// not-found state rather than an error page.
func (h *StorefrontHandler) ProductDetail(c *gin.Context) {
	var product catalog.Product
	err := h.api.Get(c.Request.Context(), "products", c.Param("id"), &product)

	var notFound *apiclient.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"page": "not-found", "error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Categories handles GET /categories: the category sub-listing
func (h *StorefrontHandler) Categories(c *gin.Context) {
	var categories []catalog.Category
	meta, err := h.api.List(c.Request.Context(), "categories", url.Values{}, &categories)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories, "meta": meta})
}

// About handles GET /about
func (h *StorefrontHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "about"})
}

// Contact handles GET /contact
func (h *StorefrontHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "contact"})
}

// pagination reads page and limit query parameters with the table defaults
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}
