// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/session"
)

// AuthHandler serves the login, register, logout, and profile pages
type AuthHandler struct {
	session *session.Store
	cart    *cart.Store
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(sessionStore *session.Store, cartStore *cart.Store) *AuthHandler {
	return &AuthHandler{
		session: sessionStore,
		cart:    cartStore,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials session.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login payload"})
		return
	}

	user, err := h.session.Login(c.Request.Context(), credentials)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var data session.RegisterData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload"})
		return
	}

	user, err := h.session.Register(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Logout handles POST /logout. It clears the persisted token, session, and
// cart snapshot, and empties the in-memory cart.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.session.Logout()
	h.cart.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile handles GET /profile for any authenticated role
func (h *AuthHandler) Profile(c *gin.Context) {
	user := h.session.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
