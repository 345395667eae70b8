// Package cart owns the client-side shopping cart: an ordered list of line
// items mirrored to durable storage on every mutation so it survives process
// restarts.
package cart

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/blossom-storefront/internal/domain/catalog"
)

// StorageKey is the persisted-store key holding the serialized cart.
const StorageKey = "cartItems"

// Direction selects how UpdateQuantity changes a line item.
type Direction int

const (
	// Increment adds one to the line item's quantity.
	Increment Direction = iota
	// Decrement subtracts one, flooring at a quantity of one. It never
	// removes the item; removal is a separate explicit operation.
	Decrement
)

// LineItem is one product-and-quantity entry in the cart. Product fields are
// a denormalized snapshot taken when the item was added; they are never
// re-fetched or re-validated against current catalog state.
type LineItem struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Image    string          `json:"image,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
}

// Subtotal returns price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Storage is the subset of the persisted store the cart needs.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Manager owns the cart. All mutations are synchronous in-memory updates
// followed by a best-effort write of the full cart to storage; storage
// failures are logged, never surfaced to callers.
type Manager struct {
	store Storage
	lg    *zap.Logger

	mu    sync.Mutex
	items []LineItem
}

// NewManager creates a Manager and loads any previously saved cart. An
// absent or unparseable stored value degrades silently to an empty cart.
func NewManager(store Storage, lg *zap.Logger) *Manager {
	m := &Manager{store: store, lg: lg}

	raw, ok, err := store.Get(StorageKey)
	if err != nil {
		lg.Warn("Loading saved cart failed, starting empty", zap.Error(err))
		return m
	}
	if !ok {
		return m
	}
	if err := json.Unmarshal(raw, &m.items); err != nil {
		lg.Warn("Saved cart is unreadable, starting empty", zap.Error(err))
		m.items = nil
	}
	return m
}

// Add merges the item into the cart: an existing line with the same product
// ID has its quantity incremented (not replaced); otherwise the item is
// appended, preserving insertion order. Quantities below one are treated as
// one. Stock checks are the caller's responsibility.
func (m *Manager) Add(item LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i].Quantity += item.Quantity
			m.persist()
			return
		}
	}
	m.items = append(m.items, item)
	m.persist()
}

// AddProduct snapshots the product into a line item and merges it into the
// cart.
func (m *Manager) AddProduct(p catalog.Product, quantity int) {
	m.Add(LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Image:    p.Image,
		Price:    p.Price,
		Quantity: quantity,
	})
}

// Remove deletes the line item with the given product ID. Removing an
// absent ID is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.items)
	m.items = slices.DeleteFunc(m.items, func(li LineItem) bool {
		return li.ID == id
	})
	if len(m.items) != before {
		m.persist()
	}
}

// UpdateQuantity adjusts the quantity of the line item with the given
// product ID by one in the given direction. Decrementing floors at one.
// Unknown IDs are a no-op.
func (m *Manager) UpdateQuantity(id string, dir Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		switch dir {
		case Increment:
			m.items[i].Quantity++
		case Decrement:
			if m.items[i].Quantity > 1 {
				m.items[i].Quantity--
			}
		}
		m.persist()
		return
	}
}

// Clear empties the cart.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	m.persist()
}

// Items returns a snapshot copy of the cart's line items in insertion order.
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.items)
}

// Len returns the number of line items.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}

// Subtotal returns the sum of price times quantity over all line items.
func (m *Manager) Subtotal() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, li := range m.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// persist writes the full cart to storage. Callers must hold m.mu.
func (m *Manager) persist() {
	items := m.items
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		m.lg.Warn("Serializing cart failed", zap.Error(err))
		return
	}
	if err := m.store.Set(StorageKey, raw); err != nil {
		m.lg.Warn("Saving cart failed", zap.Error(err))
	}
}
