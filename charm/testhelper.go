// ABOUTME: Test utilities for creating isolated charm clients
// ABOUTME: Uses temporary directories with BadgerDB so tests never reach a charm server
package charm

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
)

// testKV wraps BadgerDB to provide the same interface as charm/kv.KV
// for testing without requiring server connectivity.
type testKV struct {
	db    *badger.DB
	syncs int
}

func (t *testKV) Get(key []byte) ([]byte, error) {
	var result []byte
	err := t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

func (t *testKV) Set(key, value []byte) error {
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (t *testKV) Delete(key []byte) error {
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (t *testKV) Keys() ([][]byte, error) {
	var keys [][]byte
	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

// Sync only counts calls; there is no server in tests.
func (t *testKV) Sync() error {
	t.syncs++
	return nil
}

func (t *testKV) Reset() error {
	return t.db.DropAll()
}

// NewTestClient creates a charm client backed by a BadgerDB in t.TempDir().
// The database is closed when the test finishes.
func NewTestClient(t *testing.T, autoSync bool) *Client {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir()).
		WithLogger(nil) // Suppress badger logs in tests

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return &Client{
		kv:     &testKV{db: db},
		config: &Config{Host: "localhost", AutoSync: autoSync},
		logger: log.Default(),
	}
}
