// ABOUTME: Tests for the sample catalog and storefront filter
// ABOUTME: Covers search, category, and lookup behavior
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/phonestore/models"
)

func TestSampleIsCopy(t *testing.T) {
	a := Sample()
	a[0].Price = 1
	assert.NotEqual(t, float64(1), Sample()[0].Price)
}

func TestSampleCoversEveryCategory(t *testing.T) {
	items := Sample()
	for _, c := range models.Categories[1:] {
		assert.NotEmpty(t, Filter(items, "", c), c)
	}
}

func TestFilter(t *testing.T) {
	items := Sample()

	assert.Len(t, Filter(items, "", models.CategoryAll), len(items))
	assert.Len(t, Filter(items, "", ""), len(items))

	pixels := Filter(items, "PIXEL", models.CategoryAll)
	assert.Len(t, pixels, 3)

	google := Filter(items, "google", models.CategoryUsed)
	if assert.Len(t, google, 1) {
		assert.Equal(t, "Pixel 6 (Used)", google[0].Model)
	}

	assert.Empty(t, Filter(items, "nokia", models.CategoryFlagship))
}

func TestFind(t *testing.T) {
	p, ok := Find(Sample(), "22")
	assert.True(t, ok)
	assert.Equal(t, "13C", p.Model)

	_, ok = Find(Sample(), "999")
	assert.False(t, ok)
}
