// ABOUTME: CLI commands for the Charm-backed storage backend
// ABOUTME: Manual sync, status, and wipe - SSH key auth means no login is needed
package charm

import (
	"flag"
	"fmt"
	"io"
)

// SyncNowCommand performs an immediate sync.
func SyncNowCommand(c *Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("storage sync", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		_, _ = fmt.Fprintf(out, "Syncing with %s...\n", c.Config().Host)
	}

	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, "✓ Synced")
	return nil
}

// SyncStatusCommand shows current sync configuration and status.
func SyncStatusCommand(c *Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("storage status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := c.Config()
	_, _ = fmt.Fprintln(out, "Charm Storage Status")
	_, _ = fmt.Fprintln(out, "────────────────────")
	_, _ = fmt.Fprintf(out, "Server:    %s\n", cfg.Host)
	_, _ = fmt.Fprintf(out, "Auto-sync: %v\n", cfg.AutoSync)

	id, err := c.ID()
	if err != nil {
		_, _ = fmt.Fprintln(out, "\nStatus: Not connected")
		_, _ = fmt.Fprintln(out, "Charm uses SSH keys for authentication - no login required!")
	} else {
		_, _ = fmt.Fprintln(out, "\nStatus: Connected")
		_, _ = fmt.Fprintf(out, "ID:        %s\n", id)
	}

	if keys, err := c.Keys(); err == nil {
		_, _ = fmt.Fprintf(out, "Keys:      %d\n", len(keys))
	}
	return nil
}

// SyncWipeCommand completely resets the KV store.
// WARNING: This deletes the cached config, session and points!
func SyncWipeCommand(c *Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("storage wipe", flag.ContinueOnError)
	confirm := fs.Bool("confirm", false, "Confirm data wipe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*confirm {
		_, _ = fmt.Fprintln(out, "WARNING: This will delete ALL local data!")
		_, _ = fmt.Fprintln(out, "To confirm, run:")
		_, _ = fmt.Fprintln(out, "  phonestore storage wipe --confirm")
		return nil
	}

	if err := c.Reset(); err != nil {
		return fmt.Errorf("failed to reset KV store: %w", err)
	}

	_, _ = fmt.Fprintln(out, "✓ All data wiped")
	return nil
}
