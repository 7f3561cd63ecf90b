// ABOUTME: Local key-value persistence contract shared by all storefront components
// ABOUTME: Provides the KeyValueStore interface, well-known keys, and JSON helpers
package store

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Well-known keys. They match the names the web storefront uses so a
// migrated cache stays readable.
const (
	KeyConfig  = "n8n-config"
	KeySession = "phone-shop-auth"
	KeyPoints  = "techPoints"
	KeyLevel   = "techLevel"
	KeyBadges  = "techBadges"
)

// KeyValueStore is a synchronous, string-valued, durable store.
// Implementations are shared across components; concurrent writers to the
// same key are last-writer-wins.
type KeyValueStore interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete is a no-op for absent keys.
	Delete(key string) error
}

// Closer is implemented by stores holding OS resources.
type Closer interface {
	Close() error
}

// GetJSON decodes the value at key into v. It reports false when the key is absent.
func GetJSON(s KeyValueStore, key string, v interface{}) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(s KeyValueStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(key, string(data))
}

// GetInt reads a plain numeric string. It reports false when the key is absent.
func GetInt(s KeyValueStore, key string) (int, bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return n, true, nil
}

func SetInt(s KeyValueStore, key string, n int) error {
	return s.Set(key, strconv.Itoa(n))
}
