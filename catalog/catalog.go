// ABOUTME: Built-in sample phone catalog and storefront filtering
// ABOUTME: The sample list is shown whenever no live inventory has been fetched
package catalog

import (
	"strings"

	"github.com/harperreed/phonestore/models"
)

var sample = []models.Product{
	{ID: "1", Brand: "Apple", Model: "iPhone 15 Pro Max", Price: 159900, Category: models.CategoryFlagship, Stock: 12, Rating: 4.9, Features: []string{"Titanium design", "A17 Pro chip", "48MP Main camera", "USB-C"}},
	{ID: "2", Brand: "Samsung", Model: "Galaxy S24 Ultra", Price: 145000, Category: models.CategoryFlagship, Stock: 8, Rating: 4.8, Features: []string{"Galaxy AI", "200MP Camera", "Snapdragon 8 Gen 3", "S Pen included"}},
	{ID: "3", Brand: "Google", Model: "Pixel 8 Pro", Price: 115000, Category: models.CategoryFlagship, Stock: 15, Rating: 4.7, Features: []string{"Tensor G3", "Best AI Photos", "7 years of updates"}},
	{ID: "4", Brand: "Xiaomi", Model: "14 Ultra", Price: 130000, Category: models.CategoryFlagship, Stock: 5, Rating: 4.6, Features: []string{"Leica Optics", "90W Fast charging", "1-inch sensor"}},
	{ID: "5", Brand: "OnePlus", Model: "12", Price: 95000, Category: models.CategoryFlagship, Stock: 20, Rating: 4.7, Features: []string{"Hasselblad Camera", "5400mAh battery", "100W Charging"}},
	{ID: "11", Brand: "Samsung", Model: "Galaxy A55", Price: 55000, Category: models.CategoryMidRange, Stock: 30, Rating: 4.5, Features: []string{"Premium build", "IP67 rating", "Knox Security"}},
	{ID: "12", Brand: "Google", Model: "Pixel 7a", Price: 48000, Category: models.CategoryMidRange, Stock: 18, Rating: 4.6, Features: []string{"Tensor G2", "Wireless charging", "IP67 rating"}},
	{ID: "13", Brand: "Nothing", Model: "Phone (2)", Price: 75000, Category: models.CategoryMidRange, Stock: 12, Rating: 4.7, Features: []string{"Glyph Interface", "LTPO Display"}},
	{ID: "14", Brand: "Redmi", Model: "Note 13 Pro+ 5G", Price: 58000, Category: models.CategoryMidRange, Stock: 40, Rating: 4.4, Features: []string{"200MP Camera", "120W HyperCharge", "IP68 rating"}},
	{ID: "18", Brand: "Poco", Model: "X6 Pro", Price: 45000, Category: models.CategoryMidRange, Stock: 35, Rating: 4.6, Features: []string{"Dimensity 8300-Ultra", "64MP OIS"}},
	{ID: "21", Brand: "Samsung", Model: "Galaxy A15", Price: 22000, Category: models.CategoryBudget, Stock: 60, Rating: 4.2, Features: []string{"Super AMOLED display", "5000mAh battery"}},
	{ID: "22", Brand: "Redmi", Model: "13C", Price: 16500, Category: models.CategoryBudget, Stock: 100, Rating: 4.1, Features: []string{"90Hz display", "50MP AI camera"}},
	{ID: "23", Brand: "Tecno", Model: "Spark 20 Pro", Price: 24000, Category: models.CategoryBudget, Stock: 45, Rating: 4.3, Features: []string{"108MP Main camera", "120Hz FHD+ display"}},
	{ID: "24", Brand: "Infinix", Model: "Smart 8", Price: 12500, Category: models.CategoryBudget, Stock: 150, Rating: 4.0, Features: []string{"90Hz Punch-hole", "5000mAh battery"}},
	{ID: "25", Brand: "Nokia", Model: "G42 5G", Price: 28000, Category: models.CategoryBudget, Stock: 25, Rating: 4.2, Features: []string{"QuickFix repairability", "3-day battery life"}},
	{ID: "31", Brand: "Apple", Model: "iPhone 13 (Used)", Price: 72000, Category: models.CategoryUsed, Stock: 5, Rating: 4.4, Features: []string{"Battery health 88%+", "6 months warranty"}},
	{ID: "32", Brand: "Samsung", Model: "Galaxy S21 Ultra (Used)", Price: 55000, Category: models.CategoryUsed, Stock: 3, Rating: 4.3, Features: []string{"Minor scratches", "12GB RAM"}},
	{ID: "33", Brand: "Apple", Model: "iPhone 11 (Refurbished)", Price: 42000, Category: models.CategoryUsed, Stock: 10, Rating: 4.2, Features: []string{"Grade A condition", "New battery", "1 year warranty"}},
	{ID: "34", Brand: "Google", Model: "Pixel 6 (Used)", Price: 35000, Category: models.CategoryUsed, Stock: 7, Rating: 4.5, Features: []string{"Like new", "Clean IMEI"}},
	{ID: "39", Brand: "Apple", Model: "iPhone XR (Used)", Price: 25000, Category: models.CategoryUsed, Stock: 15, Rating: 4.1, Features: []string{"Battery 82%+", "Face ID works"}},
}

// Sample returns a copy of the built-in catalog.
func Sample() []models.Product {
	out := make([]models.Product, len(sample))
	copy(out, sample)
	return out
}

// Filter returns the products whose brand or model contains query
// (case-insensitive) and whose category matches. An empty category or
// CategoryAll matches everything.
func Filter(items []models.Product, query, category string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Product
	for _, p := range items {
		if category != "" && category != models.CategoryAll && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Model), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Find returns the product with id.
func Find(items []models.Product, id string) (models.Product, bool) {
	for _, p := range items {
		if p.ID.String() == id {
			return p, true
		}
	}
	return models.Product{}, false
}
