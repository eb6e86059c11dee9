// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"
)

// Product is the snapshot of a catalog product carried by a line item
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	SKU         string   `json:"sku,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Images      []string `json:"images,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// Variant is an optional product variant selection
type Variant struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Value string   `json:"value"`
	Price *float64 `json:"price,omitempty"`
	Stock *int     `json:"stock,omitempty"`
	SKU   string   `json:"sku,omitempty"`
}

// Item is one cart line item. LocalID keys the item in this client;
// BackendItemID is assigned by the remote cart once the add succeeds.
// Quantity is always >= 1 for a present item.
type Item struct {
	LocalID       string   `json:"id"`
	BackendItemID string   `json:"cartItemId,omitempty"`
	Product       Product  `json:"product"`
	Quantity      int      `json:"quantity"`
	Variant       *Variant `json:"variant,omitempty"`
	Price         float64  `json:"price"` // unit price actually charged
}

// localID derives the UI-keying identifier from product, variant, and
// creation time. This is not the backend's item identifier.
func localID(productID string, variant *Variant, now time.Time) string {
	variantID := "default"
	if variant != nil {
		variantID = variant.ID
	}
	return fmt.Sprintf("%s-%s-%d", productID, variantID, now.UnixMilli())
}

// unitPrice is the variant price when a priced variant is selected, else the
// product price.
func unitPrice(product Product, variant *Variant) float64 {
	if variant != nil && variant.Price != nil {
		return *variant.Price
	}
	return product.Price
}

// sameVariant matches line items on their (product, variant) pair
func sameVariant(a, b *Variant) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}
