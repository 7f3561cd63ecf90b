// ABOUTME: Migration utility for moving storefront data between storage backends
// ABOUTME: Copies cached settings, session, and reward keys with dry-run and overwrite controls

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/config"
	"github.com/harperreed/phonestore/store"
)

func main() {
	from := flag.String("from", "", "Source backend: badger, sqlite, charm (required)")
	to := flag.String("to", "", "Target backend: badger, sqlite, charm (required)")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	force := flag.Bool("force", false, "Overwrite keys that already exist in the target")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate"})

	if *from == "" || *to == "" {
		logger.Fatal("both -from and -to are required")
	}
	if *from == *to {
		logger.Fatal("source and target are the same backend", "backend", *from)
	}

	settings, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}

	if err := migrate(settings, *from, *to, *dryRun, *force, logger); err != nil {
		logger.Fatal("migration failed", "err", err)
	}

	logger.Info("migration completed successfully")
}

func migrate(settings *config.Settings, from, to string, dryRun, force bool, logger *log.Logger) error {
	src, err := openBackend(settings, from, logger)
	if err != nil {
		return err
	}
	defer closeStore(src, logger)

	dst, err := openBackend(settings, to, logger)
	if err != nil {
		return err
	}
	defer closeStore(dst, logger)

	res, err := store.Copy(src, dst, force, dryRun)
	if err != nil {
		return err
	}

	prefix := ""
	if dryRun {
		prefix = "[DRY RUN] would copy "
	}
	for _, key := range res.Copied {
		logger.Info(prefix+"copied", "key", key)
	}
	for _, key := range res.Skipped {
		logger.Warn("already present in target; use -force to overwrite", "key", key)
	}
	if len(res.Copied) == 0 && len(res.Skipped) == 0 {
		logger.Info("nothing to migrate", "from", from)
	}
	return nil
}

func openBackend(settings *config.Settings, backend string, logger *log.Logger) (store.KeyValueStore, error) {
	s := *settings
	s.Storage = backend
	if err := s.Validate(); err != nil {
		return nil, err
	}
	kv, _, err := app.OpenStore(&s, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", backend, err)
	}
	return kv, nil
}

func closeStore(kv store.KeyValueStore, logger *log.Logger) {
	if c, ok := kv.(store.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Error("failed to close store", "err", err)
		}
	}
}
