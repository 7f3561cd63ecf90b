// ABOUTME: Tests for copying storefront keys between stores
// ABOUTME: Covers skip, overwrite, dry-run, and badger-to-memory copies
package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopySkipsExisting(t *testing.T) {
	src := NewMemoryStore()
	dst := NewMemoryStore()
	require.NoError(t, src.Set(KeyPoints, "120"))
	require.NoError(t, src.Set(KeyLevel, "1"))
	require.NoError(t, dst.Set(KeyLevel, "3"))

	res, err := Copy(src, dst, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyPoints}, res.Copied)
	assert.Equal(t, []string{KeyLevel}, res.Skipped)
	assert.ElementsMatch(t, []string{KeyConfig, KeySession, KeyBadges}, res.Missing)

	v, _, _ := dst.Get(KeyLevel)
	assert.Equal(t, "3", v)
	v, _, _ = dst.Get(KeyPoints)
	assert.Equal(t, "120", v)
}

func TestCopyOverwrite(t *testing.T) {
	src := NewMemoryStore()
	dst := NewMemoryStore()
	require.NoError(t, src.Set(KeyLevel, "1"))
	require.NoError(t, dst.Set(KeyLevel, "3"))

	res, err := Copy(src, dst, true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyLevel}, res.Copied)

	v, _, _ := dst.Get(KeyLevel)
	assert.Equal(t, "1", v)
}

func TestCopyDryRun(t *testing.T) {
	src := NewMemoryStore()
	dst := NewMemoryStore()
	require.NoError(t, src.Set(KeyBadges, `["First Order"]`))

	res, err := Copy(src, dst, false, true)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyBadges}, res.Copied)

	_, ok, _ := dst.Get(KeyBadges)
	assert.False(t, ok)
}

func TestCopyWriteFailure(t *testing.T) {
	src := NewMemoryStore()
	dst := NewMemoryStore()
	require.NoError(t, src.Set(KeyPoints, "5"))
	dst.FailWrites = errors.New("disk full")

	_, err := Copy(src, dst, false, false)
	assert.ErrorContains(t, err, "disk full")
}

func TestCopyFromBadger(t *testing.T) {
	src, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()
	require.NoError(t, src.Set(KeyPoints, "600"))

	dst := NewMemoryStore()
	res, err := Copy(src, dst, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyPoints}, res.Copied)
}
