package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed coffees.json
var defaultCatalog []byte

// ErrInvalidProduct is returned when an id has no catalog entry.
var ErrInvalidProduct = errors.New("invalid coffee")

// Product is a read-only catalog record used to enrich cart lines.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// Catalog maps product ids to products while keeping display order.
type Catalog struct {
	order []string
	byID  map[string]Product
}

type catalogFile struct {
	Coffees []Product `json:"coffees"`
}

// New builds a catalog from products, rejecting blank or duplicated ids and negative prices.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(products)),
		byID:  make(map[string]Product, len(products)),
	}
	for _, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog: product with blank id")
		}
		if _, exists := c.byID[id]; exists {
			return nil, fmt.Errorf("catalog: duplicate product id %q", id)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("catalog: product %q has negative price", id)
		}
		p.ID = id
		p.Tags = append([]string(nil), p.Tags...)
		c.order = append(c.order, id)
		c.byID[id] = p
	}
	return c, nil
}

// Decode reads a catalog document of the form {"coffees": [...]}.
func Decode(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return New(file.Coffees)
}

// Default returns the embedded coffee catalog.
func Default() (*Catalog, error) {
	return Decode(strings.NewReader(string(defaultCatalog)))
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Lookup returns the product for id or ErrInvalidProduct.
func (c *Catalog) Lookup(id string) (Product, error) {
	if c == nil {
		return Product{}, ErrInvalidProduct
	}
	p, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrInvalidProduct, id)
	}
	return p, nil
}

// Has reports whether id is part of the catalog.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}

// List returns every product in catalog order.
func (c *Catalog) List() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
