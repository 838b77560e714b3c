package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Equal(t, 14, c.Len())

	p, err := c.Lookup("expresso-tradicional")
	require.NoError(t, err)
	assert.Equal(t, "Expresso Tradicional", p.Title)
	assert.Equal(t, "9.90", p.Price.StringFixed(2))
	assert.Equal(t, "expresso-tradicional", c.List()[0].ID)
}

func TestLookupMissingProduct(t *testing.T) {
	c, err := New([]Product{{ID: "coffee-a", Title: "A", Price: decimal.RequireFromString("9.90")}})
	require.NoError(t, err)

	_, err = c.Lookup("coffee-z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProduct))
	assert.False(t, c.Has("coffee-z"))
	assert.True(t, c.Has("coffee-a"))
}

func TestNewRejectsBadProducts(t *testing.T) {
	_, err := New([]Product{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)

	_, err = New([]Product{{ID: "  "}})
	assert.Error(t, err)

	_, err = New([]Product{{ID: "a", Price: decimal.NewFromInt(-1)}})
	assert.Error(t, err)
}

func TestDecodeAcceptsNumericAndStringPrices(t *testing.T) {
	doc := `{"coffees":[{"id":"a","title":"A","price":9.9},{"id":"b","title":"B","price":"4.50"}]}`
	c, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	a, err := c.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "9.90", a.Price.StringFixed(2))
	b, err := c.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, "4.50", b.Price.StringFixed(2))
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"coffees":[{"id":"house","title":"House","price":"7.00"}]}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
