// ABOUTME: Staff console CLI commands
// ABOUTME: Record sales, move stock, broadcast offers, search customers, and view history
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/staff"
)

// StaffSaleCommand records an in-store sale.
func StaffSaleCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("staff sale", flag.ContinueOnError)
	customer := fs.String("customer", "", "Customer name (required)")
	phone := fs.String("phone", "", "Customer phone with country code (required)")
	model := fs.String("model", "", "Phone sold (required)")
	amount := fs.Float64("amount", 0, "Sale amount in KSh (required)")
	payment := fs.String("payment", models.PaymentMpesa, "Payment mode (mpesa, cash, card)")
	seller := fs.String("seller", "", "Sales person (defaults to signed-in staff)")
	nationalID := fs.String("national-id", "", "Customer national ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	receipt, err := sf.Staff.RecordSale(ctx, models.Sale{
		CustomerName: *customer,
		PhoneNumber:  *phone,
		PhoneBought:  *model,
		Amount:       *amount,
		PaymentMode:  *payment,
		SalesPerson:  *seller,
		NationalID:   *nationalID,
	})
	if err != nil {
		return userError(err)
	}

	if receipt.Number != "" {
		_, _ = fmt.Fprintf(out, "✓ Sale recorded (receipt %s)\n", receipt.Number)
	} else {
		_, _ = fmt.Fprintln(out, "✓ Sale recorded")
	}
	_, _ = fmt.Fprintf(out, "  %s\n", receipt.Message)
	return nil
}

// StaffInventoryCommand registers a product or adjusts stock.
func StaffInventoryCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("staff inventory", flag.ContinueOnError)
	action := fs.String("action", models.InventoryAddStock, "new_product, add_stock, or sale")
	productID := fs.String("product", "", "Existing product ID (add_stock, sale)")
	brand := fs.String("brand", "", "Brand (new_product)")
	model := fs.String("model", "", "Model (new_product)")
	quantity := fs.Int("quantity", 0, "Units")
	price := fs.Float64("price", 0, "Unit price in KSh (new_product)")
	minimum := fs.Int("minimum", models.DefaultMinimumStock, "Low-stock threshold")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := sf.Staff.UpdateInventory(ctx, *action, models.InventoryChange{
		ProductID:    *productID,
		Brand:        *brand,
		Model:        *model,
		Quantity:     *quantity,
		Price:        *price,
		MinimumStock: *minimum,
	})
	if err != nil {
		return userError(err)
	}

	_, _ = fmt.Fprintf(out, "✓ %s\n", res.Message)
	if res.LowStockAlert {
		_, _ = fmt.Fprintf(out, "⚠ %s\n", staff.MsgLowStock)
	}
	return nil
}

// StaffOfferCommand broadcasts a deal to the shop's WhatsApp group.
func StaffOfferCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("staff offer", flag.ContinueOnError)
	model := fs.String("model", "", "Phone model (required)")
	price := fs.Float64("price", 0, "Offer price in KSh (required)")
	features := fs.String("features", "", "Highlights to mention")
	deal := fs.String("deal", models.DealNewArrival, "Deal type (new-arrival, discount, flash-sale)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := sf.Staff.BroadcastOffer(ctx, models.Offer{
		PhoneModel: *model,
		Price:      *price,
		Features:   *features,
		DealType:   *deal,
	})
	if err != nil {
		return userError(err)
	}
	_, _ = fmt.Fprintf(out, "✓ Offer sent\n  %s\n", msg)
	return nil
}

// StaffCustomersCommand searches the customer database.
func StaffCustomersCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("staff customers", flag.ContinueOnError)
	by := fs.String("by", models.SearchByName, "Search field (name, phone, model, nationalId)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: staff customers [--by field] <query>")
	}

	res, err := sf.Staff.SearchCustomers(ctx, fs.Arg(0), *by)
	if err != nil {
		return userError(err)
	}
	if len(res.Customers) == 0 {
		_, _ = fmt.Fprintln(out, res.Message)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPHONE\tMODEL\tLAST PURCHASE\tTOTAL (KSh)")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t-------------\t-----------")
	for _, c := range res.Customers {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\n", c.Name, c.Phone, c.PhoneModel, c.LastPurchase, c.TotalSpent)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", res.Message)
	return nil
}

// StaffHistoryCommand prints recent sales and stock movements.
func StaffHistoryCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("staff history", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries := sf.Config.FetchHistory(ctx)
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No history yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tMODEL\tQTY\tAMOUNT\tWHEN")
	_, _ = fmt.Fprintln(w, "----\t-----\t---\t------\t----")
	for _, e := range entries {
		label := e.Model
		if label == "" {
			label = e.Description
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%s\n", e.Type, label, e.Quantity, e.Amount, e.Timestamp)
	}
	return w.Flush()
}

// userError reduces an outcome error to the message shown on the console.
func userError(err error) error {
	return fmt.Errorf("%s", outcome.MessageOf(err, err.Error()))
}
