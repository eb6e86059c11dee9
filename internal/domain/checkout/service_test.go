package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/storage"
)

type stubRemoteCart struct{}

func (stubRemoteCart) Fetch(ctx context.Context) ([]cart.Item, error) { return nil, nil }

func (stubRemoteCart) AddItem(ctx context.Context, productID string, qty int) (string, error) {
	return "backend-" + productID, nil
}

func (stubRemoteCart) UpdateItem(ctx context.Context, productID string, qty int) error { return nil }
func (stubRemoteCart) RemoveItem(ctx context.Context, productID string) error          { return nil }
func (stubRemoteCart) Clear(ctx context.Context) error                                 { return nil }

type stubOrdersAPI struct {
	req          *PlaceOrderRequest
	confirmation *Confirmation
	err          error
}

func (s *stubOrdersAPI) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*Confirmation, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return s.confirmation, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func seededCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore(stubRemoteCart{}, storage.NewMemoryStore(), testLogger())

	variantPrice := 15.0
	variant := &cart.Variant{ID: "v1", Name: "Large", Price: &variantPrice}
	if err := store.AddItem(context.Background(), cart.Product{ID: "p1", Name: "Mug", Price: 10}, 2, nil); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := store.AddItem(context.Background(), cart.Product{ID: "p2", Name: "Shirt", Price: 12}, 1, variant); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return store
}

func TestPlaceOrderBuildsPayloadFromCart(t *testing.T) {
	cartStore := seededCart(t)
	api := &stubOrdersAPI{confirmation: &Confirmation{ID: "o1", OrderNumber: "ORD-001", Total: 35, Status: "pending"}}
	service := NewService(cartStore, api, testLogger())

	shipping := Address{FirstName: "Ada", Address1: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US"}
	billing := shipping

	confirmation, err := service.PlaceOrder(context.Background(), shipping, billing, "credit_card")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if confirmation.OrderNumber != "ORD-001" {
		t.Errorf("OrderNumber = %q, want ORD-001", confirmation.OrderNumber)
	}

	if api.req == nil {
		t.Fatal("orders endpoint was never called")
	}
	if api.req.PaymentMethod != "credit_card" || api.req.ShippingAddress.City != "Springfield" {
		t.Errorf("request = %+v, want the submitted addresses and payment method", api.req)
	}
	if len(api.req.Items) != 2 {
		t.Fatalf("items = %d, want one line per cart item", len(api.req.Items))
	}

	byProduct := map[string]OrderItem{}
	for _, line := range api.req.Items {
		byProduct[line.ProductID] = line
	}
	if line := byProduct["p1"]; line.Quantity != 2 || line.Price != 10 || line.VariantID != "" {
		t.Errorf("p1 line = %+v, want quantity 2 at the product price", line)
	}
	if line := byProduct["p2"]; line.Quantity != 1 || line.Price != 15 || line.VariantID != "v1" {
		t.Errorf("p2 line = %+v, want the variant id and variant price", line)
	}
}

func TestPlaceOrderClearsCartOnlyAfterAcceptance(t *testing.T) {
	cartStore := seededCart(t)
	api := &stubOrdersAPI{confirmation: &Confirmation{OrderNumber: "ORD-002"}}
	service := NewService(cartStore, api, testLogger())

	if _, err := service.PlaceOrder(context.Background(), Address{}, Address{}, "cod"); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if got := cartStore.TotalItems(); got != 0 {
		t.Errorf("cart after accepted order has %d items, want 0", got)
	}
}

func TestPlaceOrderKeepsCartOnBackendFailure(t *testing.T) {
	cartStore := seededCart(t)
	api := &stubOrdersAPI{err: errors.New("payment declined")}
	service := NewService(cartStore, api, testLogger())

	if _, err := service.PlaceOrder(context.Background(), Address{}, Address{}, "cod"); err == nil {
		t.Fatal("PlaceOrder succeeded despite backend failure")
	}
	if got := cartStore.TotalItems(); got != 3 {
		t.Errorf("cart after failed order has %d items, want the original 3", got)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	cartStore := cart.NewStore(stubRemoteCart{}, storage.NewMemoryStore(), testLogger())
	service := NewService(cartStore, &stubOrdersAPI{}, testLogger())

	if _, err := service.PlaceOrder(context.Background(), Address{}, Address{}, "cod"); err == nil {
		t.Fatal("PlaceOrder accepted an empty cart")
	}
}
