package cart

import "strings"

// Item is a single cart line: a catalog product id and how many of it.
type Item struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Cart holds ordered line items, unique by id, each with quantity >= 1.
// A Cart is not safe for concurrent use; the owning container serializes access.
type Cart struct {
	items []Item
}

// New returns a cart seeded with items. Lines with blank ids or non-positive
// quantities are skipped and repeated ids are merged.
func New(items []Item) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.Add(item.ID, item.Quantity)
	}
	return c
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends id with quantity, or grows the existing line by quantity.
// It reports whether the cart changed.
func (c *Cart) Add(id string, quantity int) bool {
	id = strings.TrimSpace(id)
	if id == "" || quantity <= 0 {
		return false
	}
	if i := c.indexOf(id); i >= 0 {
		c.items[i].Quantity += quantity
		return true
	}
	c.items = append(c.items, Item{ID: id, Quantity: quantity})
	return true
}

// Increment adds one to the quantity of id.
func (c *Cart) Increment(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items[i].Quantity++
	return true
}

// Decrement removes one from the quantity of id, never going below 1.
func (c *Cart) Decrement(id string) bool {
	i := c.indexOf(id)
	if i < 0 || c.items[i].Quantity <= 1 {
		return false
	}
	c.items[i].Quantity--
	return true
}

// Remove deletes the line for id.
func (c *Cart) Remove(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() bool {
	if len(c.items) == 0 {
		return false
	}
	c.items = nil
	return true
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	return Clone(c.items)
}

// Quantity returns the quantity of id, or 0 when absent.
func (c *Cart) Quantity(id string) int {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

func (c *Cart) Contains(id string) bool {
	return c.indexOf(id) >= 0
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalQuantity sums quantities across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Clone copies items so callers never share backing arrays with a cart or order.
func Clone(items []Item) []Item {
	if len(items) == 0 {
		return []Item{}
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
