// ABOUTME: Tests for KeyValueStore implementations and JSON helpers
// ABOUTME: Runs the same contract suite against memory and badger stores
package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runContract(t *testing.T, s KeyValueStore) {
	t.Helper()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("a", "1"))
	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	// last writer wins
	require.NoError(t, s.Set("a", "2"))
	v, _, _ = s.Get("a")
	assert.Equal(t, "2", v)

	require.NoError(t, s.Delete("a"))
	_, ok, err = s.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete("never-set"))
}

func TestMemoryStoreContract(t *testing.T) {
	runContract(t, NewMemoryStore())
}

func TestBadgerStoreContract(t *testing.T) {
	s, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	runContract(t, s)
}

func TestBadgerStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyPoints, "120"))
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, ok, err := GetInt(s, KeyPoints)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 120, n)
}

func TestJSONHelpers(t *testing.T) {
	s := NewMemoryStore()

	type record struct {
		Name string `json:"name"`
	}
	require.NoError(t, SetJSON(s, "rec", record{Name: "Tech Mobile Store"}))

	var got record
	ok, err := GetJSON(s, "rec", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Tech Mobile Store", got.Name)

	require.NoError(t, s.Set("bad", "{not json"))
	ok, err = GetJSON(s, "bad", &got)
	assert.True(t, ok)
	assert.Error(t, err)

	ok, err = GetJSON(s, "absent", &got)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestGetIntRejectsGarbage(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(KeyPoints, "lots"))

	_, ok, err := GetInt(s, KeyPoints)
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestMemoryStoreFailWrites(t *testing.T) {
	s := NewMemoryStore()
	s.FailWrites = errors.New("quota exceeded")

	assert.Error(t, s.Set("a", "1"))
	assert.Error(t, s.Delete("a"))
}
