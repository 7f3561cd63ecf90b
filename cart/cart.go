// ABOUTME: Ephemeral in-process shopping cart
// ABOUTME: Items are price snapshots taken at add time and are never persisted
package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/phonestore/models"
)

// Store is an ordered list of cart items.
type Store struct {
	mu    sync.RWMutex
	items []models.CartItem
	now   func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Add appends a snapshot of p and returns the new length.
func (s *Store) Add(p models.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, models.NewCartItem(p, s.now()))
	return len(s.items)
}

// RemoveAt removes the item at index i.
func (s *Store) RemoveAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("cart index %d out of range (have %d items)", i, len(s.items))
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the cart contents in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Total sums the captured prices.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, it := range s.items {
		total += it.Price
	}
	return total
}
