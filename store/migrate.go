// ABOUTME: Copies the storefront's well-known keys between storage backends
// ABOUTME: Used when switching between badger, sqlite, and charm storage
package store

import "fmt"

// Keys lists every key the storefront persists.
var Keys = []string{KeyConfig, KeySession, KeyPoints, KeyLevel, KeyBadges}

// CopyResult reports what Copy did per key.
type CopyResult struct {
	Copied  []string
	Skipped []string
	Missing []string
}

// Copy moves the well-known keys from src to dst. Keys already present in
// dst are skipped unless overwrite is set. With dryRun nothing is written.
func Copy(src, dst KeyValueStore, overwrite, dryRun bool) (CopyResult, error) {
	var res CopyResult
	for _, key := range Keys {
		value, ok, err := src.Get(key)
		if err != nil {
			return res, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			res.Missing = append(res.Missing, key)
			continue
		}

		if !overwrite {
			_, exists, err := dst.Get(key)
			if err != nil {
				return res, fmt.Errorf("failed to check %s: %w", key, err)
			}
			if exists {
				res.Skipped = append(res.Skipped, key)
				continue
			}
		}

		if !dryRun {
			if err := dst.Set(key, value); err != nil {
				return res, fmt.Errorf("failed to write %s: %w", key, err)
			}
		}
		res.Copied = append(res.Copied, key)
	}
	return res, nil
}
