// internal/interfaces/http/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// Deps bundles the stores and clients the route tree needs
type Deps struct {
	Session  *session.Store
	Cart     *cart.Store
	Checkout *checkout.Service
	API      *apiclient.Client
	Log      *logrus.Logger
}

// SetupRoutes mounts the storefront routing surface: public pages, the
// customer-protected cart and profile, and the admin and merchant subtrees.
// Unmatched paths redirect to home.
func SetupRoutes(engine *gin.Engine, deps *Deps) {
	authHandler := handlers.NewAuthHandler(deps.Session, deps.Cart)
	storeHandler := handlers.NewStorefrontHandler(deps.API, deps.Log)
	cartHandler := handlers.NewCartHandler(deps.Cart)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout)
	adminHandler := handlers.NewAdminHandler(deps.API, deps.Log)
	merchantHandler := handlers.NewMerchantHandler(deps.API, deps.Log)

	// Public paths
	engine.GET("/", storeHandler.Home)
	engine.GET("/products", storeHandler.Products)
	engine.GET("/products/:id", storeHandler.ProductDetail)
	engine.GET("/categories", storeHandler.Categories)
	engine.GET("/about", storeHandler.About)
	engine.GET("/contact", storeHandler.Contact)
	engine.POST("/login", authHandler.Login)
	engine.POST("/register", authHandler.Register)
	engine.POST("/logout", authHandler.Logout)

	// Customer-protected paths
	customer := engine.Group("/cart")
	customer.Use(middleware.RequireRoles(deps.Session, session.RoleCustomer))
	{
		customer.GET("", cartHandler.GetCart)
		customer.POST("/items", cartHandler.AddItem)
		customer.PUT("/items/:id", cartHandler.UpdateItem)
		customer.DELETE("/items/:id", cartHandler.RemoveItem)
		customer.DELETE("", cartHandler.Clear)
	}

	engine.POST("/checkout",
		middleware.RequireRoles(deps.Session, session.RoleCustomer),
		checkoutHandler.PlaceOrder)

	// Profile is open to every authenticated role
	engine.GET("/profile",
		middleware.RequireRoles(deps.Session,
			session.RoleCustomer, session.RoleMerchant, session.RoleAdmin),
		authHandler.Profile)

	// Admin subtree
	admin := engine.Group("/admin")
	admin.Use(middleware.RequireRoles(deps.Session, session.RoleAdmin))
	{
		admin.GET("", adminHandler.Dashboard)

		admin.GET("/products", adminHandler.ListProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)

		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users", adminHandler.CreateUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

		admin.GET("/merchants", adminHandler.ListMerchants)
		admin.POST("/merchants", adminHandler.CreateMerchant)
		admin.PUT("/merchants/:id", adminHandler.UpdateMerchant)
		admin.DELETE("/merchants/:id", adminHandler.DeleteMerchant)
	}

	// Merchant subtree
	merchant := engine.Group("/merchant")
	merchant.Use(middleware.RequireRoles(deps.Session, session.RoleMerchant))
	{
		merchant.GET("", merchantHandler.Dashboard)

		merchant.GET("/products", merchantHandler.ListProducts)
		merchant.POST("/products", merchantHandler.CreateProduct)
		merchant.PUT("/products/:id", merchantHandler.UpdateProduct)
		merchant.DELETE("/products/:id", merchantHandler.DeleteProduct)

		merchant.GET("/orders", merchantHandler.ListOrders)
	}

	// Fallback
	engine.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})
}
