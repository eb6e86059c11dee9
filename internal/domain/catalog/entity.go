// internal/domain/catalog/entity.go
package catalog

// Record types for the backend resources the CRUD tables display. These are
// the backend's shapes passed through the presentation layer; the server
// owns ids, timestamps, and the expanded relations.

// Category is a product category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// MerchantRef is the expanded merchant relation on a product
type MerchantRef struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
}

// Product is a catalog product as listed by the products resource
type Product struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Price         float64      `json:"price"`
	ComparePrice  float64      `json:"comparePrice,omitempty"`
	SKU           string       `json:"sku,omitempty"`
	Stock         int          `json:"stock"`
	Images        []string     `json:"images,omitempty"`
	Brand         string       `json:"brand,omitempty"`
	Status        string       `json:"status"`
	CategoryID    string       `json:"categoryId,omitempty"`
	MerchantID    string       `json:"merchantId,omitempty"`
	Category      *Category    `json:"category,omitempty"`
	Merchant      *MerchantRef `json:"merchant,omitempty"`
	AverageRating float64      `json:"averageRating,omitempty"`
	ReviewCount   int          `json:"reviewCount,omitempty"`
	CreatedAt     string       `json:"createdAt,omitempty"`
	UpdatedAt     string       `json:"updatedAt,omitempty"`
}

// User is an account row in the admin users table
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Merchant is a merchant row in the admin merchants table
type Merchant struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// Order is an order row in the admin and merchant order tables
type Order struct {
	ID            string  `json:"id"`
	OrderNumber   string  `json:"orderNumber"`
	CustomerID    string  `json:"customerId,omitempty"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Shipping      float64 `json:"shipping"`
	Total         float64 `json:"total"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}
