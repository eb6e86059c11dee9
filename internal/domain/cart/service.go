// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/storage"
)

// Store holds the cart line items. Every mutation is written through to the
// remote cart first and mirrored into the local snapshot only after remote
// success. Mutations are serialized, so two concurrent adds of the same
// (product, variant) pair merge into one line item.
type Store struct {
	mu        sync.Mutex
	remote    RemoteCart
	storage   storage.Store
	log       *logrus.Logger
	items     []Item
	listeners map[int]func()
	nextID    int
	now       func() time.Time
}

// NewStore creates the cart store
func NewStore(remote RemoteCart, st storage.Store, log *logrus.Logger) *Store {
	return &Store{
		remote:    remote,
		storage:   st,
		log:       log,
		listeners: make(map[int]func()),
		now:       time.Now,
	}
}

// Load populates the cart at startup. A non-empty local snapshot wins; only
// an empty snapshot triggers a one-time remote fetch that seeds both memory
// and storage.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()

	if raw, ok := s.storage.Get(storage.KeyCart); ok {
		var saved []Item
		if err := json.Unmarshal(raw, &saved); err != nil {
			s.log.WithError(err).Warn("Discarding unreadable cart snapshot")
			s.storage.Delete(storage.KeyCart)
		} else if len(saved) > 0 {
			s.items = saved
			s.mu.Unlock()
			s.notify()
			return nil
		}
	}

	items, err := s.remote.Fetch(ctx)
	if err != nil {
		s.mu.Unlock()
		s.log.WithError(err).Warn("Failed to load cart")
		return err
	}

	s.items = items
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// AddItem adds quantity of (product, variant) to the cart. An existing line
// item for the same pair has its quantity incremented instead of a duplicate
// being appended. On remote failure no local change is made and the error
// propagates for UI-level reporting.
func (s *Store) AddItem(ctx context.Context, product Product, quantity int, variant *Variant) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()

	for i := range s.items {
		if s.items[i].Product.ID == product.ID && sameVariant(s.items[i].Variant, variant) {
			err := s.setQuantityLocked(ctx, i, s.items[i].Quantity+quantity)
			s.mu.Unlock()
			if err == nil {
				s.notify()
			}
			return err
		}
	}

	backendID, err := s.remote.AddItem(ctx, product.ID, quantity)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.items = append(s.items, Item{
		LocalID:       localID(product.ID, variant, s.now()),
		BackendItemID: backendID,
		Product:       product,
		Quantity:      quantity,
		Variant:       variant,
		Price:         unitPrice(product, variant),
	})
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveItem removes the line item with the given local id. Unknown ids are
// a no-op. The local item is removed only after the remote removal succeeds.
func (s *Store) RemoveItem(ctx context.Context, localID string) error {
	s.mu.Lock()

	index := s.indexOfLocked(localID)
	if index < 0 {
		s.mu.Unlock()
		return nil
	}

	if err := s.remote.RemoveItem(ctx, s.items[index].Product.ID); err != nil {
		s.mu.Unlock()
		return err
	}

	s.items = append(s.items[:index], s.items[index+1:]...)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateQuantity sets the quantity of the line item with the given local id.
// A quantity of zero or less removes the item instead of leaving a
// zero-quantity entry.
func (s *Store) UpdateQuantity(ctx context.Context, localID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, localID)
	}

	s.mu.Lock()

	index := s.indexOfLocked(localID)
	if index < 0 {
		s.mu.Unlock()
		return nil
	}

	err := s.setQuantityLocked(ctx, index, quantity)
	s.mu.Unlock()
	if err == nil {
		s.notify()
	}
	return err
}

// Clear empties the remote cart, then the local state
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()

	if err := s.remote.Clear(ctx); err != nil {
		s.mu.Unlock()
		return err
	}

	s.items = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Reset empties the in-memory cart without a remote round-trip. Used on
// logout, after the snapshot store has already been cleared.
func (s *Store) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the current line items
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems is the sum of quantities, recomputed on every read
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity, recomputed on every read
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Subscribe registers a listener invoked on every state change and returns
// an unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// setQuantityLocked updates the quantity of the item at index, remote first
func (s *Store) setQuantityLocked(ctx context.Context, index, quantity int) error {
	if err := s.remote.UpdateItem(ctx, s.items[index].Product.ID, quantity); err != nil {
		return err
	}
	s.items[index].Quantity = quantity
	s.persistLocked()
	return nil
}

func (s *Store) indexOfLocked(localID string) int {
	for i := range s.items {
		if s.items[i].LocalID == localID {
			return i
		}
	}
	return -1
}

// persistLocked mirrors the full item list into the local snapshot
func (s *Store) persistLocked() {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.log.WithError(err).Warn("Failed to encode cart snapshot")
		return
	}
	s.storage.Set(storage.KeyCart, raw)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
