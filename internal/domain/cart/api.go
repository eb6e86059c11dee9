// internal/domain/cart/api.go
package cart

import (
	"context"
	"net/http"
	"time"

	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// RemoteCart is the remote cart collaborator contract. Item operations are
// keyed by product id.
type RemoteCart interface {
	Fetch(ctx context.Context) ([]Item, error)
	AddItem(ctx context.Context, productID string, quantity int) (string, error)
	UpdateItem(ctx context.Context, productID string, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

// API implements RemoteCart against the backend cart endpoints
type API struct {
	client *apiclient.Client
}

// NewAPI creates the backend cart client
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

// remoteItem is the backend's cart item shape
type remoteItem struct {
	ID       string   `json:"id"`
	Product  Product  `json:"product"`
	Quantity int      `json:"quantity"`
	Variant  *Variant `json:"variant,omitempty"`
	Price    float64  `json:"price"`
}

// Fetch retrieves the remote cart and maps it into line items with freshly
// derived local identifiers.
func (a *API) Fetch(ctx context.Context) ([]Item, error) {
	var payload struct {
		Items []remoteItem `json:"items"`
	}
	if err := a.client.Do(ctx, http.MethodGet, "cart", nil, &payload); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(payload.Items))
	for _, remote := range payload.Items {
		price := remote.Price
		if price == 0 {
			price = unitPrice(remote.Product, remote.Variant)
		}
		items = append(items, Item{
			LocalID:       localID(remote.Product.ID, remote.Variant, time.Now()),
			BackendItemID: remote.ID,
			Product:       remote.Product,
			Quantity:      remote.Quantity,
			Variant:       remote.Variant,
			Price:         price,
		})
	}
	return items, nil
}

// AddItem adds (product, quantity) remotely and returns the backend item id
func (a *API) AddItem(ctx context.Context, productID string, quantity int) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	body := map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}
	if err := a.client.Do(ctx, http.MethodPost, "cart/items", body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateItem sets the quantity of the item keyed by product id
func (a *API) UpdateItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return a.client.Do(ctx, http.MethodPut, "cart/items/"+productID, body, nil)
}

// RemoveItem removes the item keyed by product id
func (a *API) RemoveItem(ctx context.Context, productID string) error {
	return a.client.Do(ctx, http.MethodDelete, "cart/items/"+productID, nil, nil)
}

// Clear empties the remote cart
func (a *API) Clear(ctx context.Context) error {
	return a.client.Do(ctx, http.MethodDelete, "cart", nil, nil)
}
