package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoTable   = errors.New("no table selected")
	ErrEmptyCart = errors.New("cart has no items")
)

// Item is a cart line. Name and UnitPrice are snapshotted from the catalog
// when the line is added, so a price edit mid-session never changes what the
// guest already agreed to.
type Item struct {
	ProductID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"price"`
	Quantity  int       `json:"quantity"`
}

// Cart accumulates a guest's selection for one browsing session. Items are
// meaningless without a table, so every mutation requires a resolved table
// and losing the table resolution empties the cart.
type Cart struct {
	mu        sync.RWMutex
	SessionID string
	table     *TableSelection
	items     []Item
	updatedAt time.Time
}

func New(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		updatedAt: time.Now(),
	}
}

// AddItem merges quantity into an existing line for the same product, or
// appends a new line. The price snapshot of an existing line is kept.
// Rejected with ErrNoTable until a table has been resolved.
func (c *Cart) AddItem(productID uuid.UUID, name string, unitPrice int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return ErrNoTable
	}

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity += quantity
			c.updatedAt = time.Now()
			return nil
		}
	}

	c.items = append(c.items, Item{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	c.updatedAt = time.Now()
	return nil
}

// UpdateQuantity sets the line's quantity to an absolute value. Zero or
// negative removes the line. Unknown products are a no-op. Like AddItem it
// requires a resolved table.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return ErrNoTable
	}

	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		c.updatedAt = time.Now()
		return nil
	}
	return nil
}

// RemoveItem drops the line for the product. Removing an absent product is
// not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = time.Now()
			return
		}
	}
}

// Total recomputes the amount from the lines on every call; there is no
// stored running total to drift.
func (c *Cart) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, item := range c.items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the number of units across all lines.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.updatedAt = time.Now()
}

func (c *Cart) SetTable(sel TableSelection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.table = &sel
	c.updatedAt = time.Now()
}

// ResetTable drops the table resolution and empties the cart with it. Items
// kept across a lost table would be submittable against nothing.
func (c *Cart) ResetTable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.table = nil
	c.items = nil
	c.updatedAt = time.Now()
}

func (c *Cart) Table() *TableSelection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.table == nil {
		return nil
	}
	sel := *c.table
	return &sel
}

func (c *Cart) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

// CheckoutReady reports whether the cart can be submitted as an order and
// returns the table and line items it would be submitted with. Both are
// captured under a single lock so a concurrent reset cannot land between
// the readiness check and the reads.
func (c *Cart) CheckoutReady() (TableSelection, []Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.table == nil {
		return TableSelection{}, nil, ErrNoTable
	}
	if len(c.items) == 0 {
		return TableSelection{}, nil, ErrEmptyCart
	}

	items := make([]Item, len(c.items))
	copy(items, c.items)
	return *c.table, items, nil
}
