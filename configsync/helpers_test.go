// ABOUTME: Shared timing constants for configsync tests
// ABOUTME: Keeps Eventually polling consistent across the package
package configsync

import "time"

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)
