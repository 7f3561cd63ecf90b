// ABOUTME: Shopper-facing CLI commands
// ABOUTME: Browse the catalog, show reward progress, and launch the terminal shop
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/gamification"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/tui"
)

// CatalogCommand lists phones, optionally filtered.
func CatalogCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	query := fs.String("query", "", "Search brand or model")
	category := fs.String("category", models.CategoryAll, "Category ("+strings.Join(models.Categories, ", ")+")")
	refresh := fs.Bool("refresh", false, "Fetch the latest inventory first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *refresh {
		sf.Config.FetchInventory(ctx)
	}

	products := sf.Products(*query, *category)
	if len(products) == 0 {
		_, _ = fmt.Fprintln(out, "No phones found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tBRAND\tMODEL\tCATEGORY\tPRICE (KSh)\tSTOCK")
	_, _ = fmt.Fprintln(w, "--\t-----\t-----\t--------\t-----------\t-----")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%d\n", p.ID, p.Brand, p.Model, p.Category, p.Price, p.Stock)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !sf.Config.IsLive() {
		_, _ = fmt.Fprintln(out, "\n(showing sample catalog; backend inventory unavailable)")
	}
	return nil
}

// PointsCommand shows the shopper's points, level, and badges.
func PointsCommand(sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("points", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	g := sf.Rewards.State()
	toNext := g.Level*gamification.PointsPerLevel - g.Points

	_, _ = fmt.Fprintf(out, "Points:  %d\n", g.Points)
	_, _ = fmt.Fprintf(out, "Level:   %d (%d to next)\n", g.Level, toNext)
	if len(g.Badges) == 0 {
		_, _ = fmt.Fprintln(out, "Badges:  none yet")
	} else {
		_, _ = fmt.Fprintf(out, "Badges:  %s\n", strings.Join(g.Badges, ", "))
	}
	return nil
}

// ShopCommand launches the interactive terminal shop.
func ShopCommand(ctx context.Context, sf *app.Storefront, args []string) error {
	fs := flag.NewFlagSet("shop", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return tui.Run(ctx, sf)
}
