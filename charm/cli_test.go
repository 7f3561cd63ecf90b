// ABOUTME: Tests for charm storage CLI commands
// ABOUTME: Exercises sync, status, and wipe against a badger-backed test client
package charm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncNowCommand(t *testing.T) {
	c := NewTestClient(t, false)
	var out bytes.Buffer

	require.NoError(t, SyncNowCommand(c, &out, []string{"--verbose"}))
	assert.Contains(t, out.String(), "Syncing with localhost")
	assert.Contains(t, out.String(), "✓ Synced")
}

func TestSyncStatusCommand(t *testing.T) {
	c := NewTestClient(t, true)
	require.NoError(t, c.Set("n8n-config", "{}"))
	var out bytes.Buffer

	require.NoError(t, SyncStatusCommand(c, &out, nil))
	assert.Contains(t, out.String(), "Auto-sync: true")
	assert.Contains(t, out.String(), "Keys:      1")
}

func TestSyncWipeRequiresConfirm(t *testing.T) {
	c := NewTestClient(t, false)
	require.NoError(t, c.Set("techPoints", "10"))

	var out bytes.Buffer
	require.NoError(t, SyncWipeCommand(c, &out, nil))
	_, ok, _ := c.Get("techPoints")
	assert.True(t, ok)

	out.Reset()
	require.NoError(t, SyncWipeCommand(c, &out, []string{"--confirm"}))
	_, ok, _ = c.Get("techPoints")
	assert.False(t, ok)
}
