// ABOUTME: Tests for the in-process cart
// ABOUTME: Covers snapshot pricing, ordering, removal bounds, and totals
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/phonestore/models"
)

var (
	a15  = models.Product{ID: "21", Brand: "Samsung", Model: "Galaxy A15", Price: 22000, Category: models.CategoryBudget}
	p7a  = models.Product{ID: "12", Brand: "Google", Model: "Pixel 7a", Price: 48000, Category: models.CategoryMidRange}
	s24u = models.Product{ID: "2", Brand: "Samsung", Model: "Galaxy S24 Ultra", Price: 145000, Category: models.CategoryFlagship}
)

func TestAddKeepsOrderAndDuplicates(t *testing.T) {
	c := New()
	assert.Equal(t, 1, c.Add(a15))
	assert.Equal(t, 2, c.Add(p7a))
	assert.Equal(t, 3, c.Add(a15))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Galaxy A15", items[0].Model)
	assert.Equal(t, "Pixel 7a", items[1].Model)
	assert.Equal(t, "Galaxy A15", items[2].Model)
	assert.Equal(t, float64(92000), c.Total())
}

func TestSnapshotPriceIsFixed(t *testing.T) {
	c := New()
	p := a15
	c.Add(p)
	p.Price = 1
	assert.Equal(t, float64(22000), c.Items()[0].Price)
}

func TestRemoveAt(t *testing.T) {
	c := New()
	c.Add(a15)
	c.Add(p7a)
	c.Add(s24u)

	require.NoError(t, c.RemoveAt(1))
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Galaxy A15", items[0].Model)
	assert.Equal(t, "Galaxy S24 Ultra", items[1].Model)
	assert.Equal(t, float64(167000), c.Total())
}

func TestRemoveAtOutOfRange(t *testing.T) {
	c := New()
	c.Add(a15)

	assert.Error(t, c.RemoveAt(1))
	assert.Error(t, c.RemoveAt(-1))
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(a15)
	c.Add(p7a)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Items())
	assert.Zero(t, c.Total())
}

func TestItemsIsCopy(t *testing.T) {
	c := New()
	c.Add(a15)
	items := c.Items()
	items[0].Price = 0
	assert.Equal(t, float64(22000), c.Total())
}
