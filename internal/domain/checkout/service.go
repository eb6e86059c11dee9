// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// Address is a shipping or billing address
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// OrderItem is one line of the order payload built from the cart
type OrderItem struct {
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// PlaceOrderRequest is the payload sent to the orders endpoint
type PlaceOrderRequest struct {
	Items           []OrderItem `json:"items"`
	ShippingAddress Address     `json:"shippingAddress"`
	BillingAddress  Address     `json:"billingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}

// Confirmation is the backend's answer to a placed order
type Confirmation struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
	Status      string  `json:"status"`
}

// OrdersAPI is the orders collaborator contract
type OrdersAPI interface {
	PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*Confirmation, error)
}

// API implements OrdersAPI against the backend orders endpoint
type API struct {
	client *apiclient.Client
}

// NewAPI creates the backend orders client
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

// PlaceOrder submits the order payload
func (a *API) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*Confirmation, error) {
	var confirmation Confirmation
	if err := a.client.Do(ctx, http.MethodPost, "orders", req, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

// Service builds an order payload from the current cart and submits it
type Service struct {
	cart *cart.Store
	api  OrdersAPI
	log  *logrus.Logger
}

// NewService creates the checkout service
func NewService(cartStore *cart.Store, api OrdersAPI, log *logrus.Logger) *Service {
	return &Service{cart: cartStore, api: api, log: log}
}

// PlaceOrder turns the cart into an order. The cart is cleared only after
// the backend accepts the order.
func (s *Service) PlaceOrder(ctx context.Context, shipping, billing Address, paymentMethod string) (*Confirmation, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot place an order from an empty cart")
	}

	req := &PlaceOrderRequest{
		Items:           make([]OrderItem, 0, len(items)),
		ShippingAddress: shipping,
		BillingAddress:  billing,
		PaymentMethod:   paymentMethod,
	}
	for _, item := range items {
		line := OrderItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Variant != nil {
			line.VariantID = item.Variant.ID
		}
		req.Items = append(req.Items, line)
	}

	confirmation, err := s.api.PlaceOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("Order placed but cart clear failed")
	}

	s.log.WithField("order_number", confirmation.OrderNumber).Info("Order placed")
	return confirmation, nil
}
