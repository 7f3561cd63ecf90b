// ABOUTME: Shop settings CLI commands
// ABOUTME: Show, update, and test the shop configuration shared with the backend
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/configsync"
	"github.com/harperreed/phonestore/outcome"
)

// ConfigShowCommand prints the working shop configuration.
func ConfigShowCommand(sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("config show", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := sf.Config.Current()
	webhook := cfg.WebhookURL
	if webhook == "" {
		webhook = "(not configured)"
	}

	_, _ = fmt.Fprintln(out, "Shop Settings")
	_, _ = fmt.Fprintln(out, "─────────────")
	_, _ = fmt.Fprintf(out, "Shop:       %s\n", cfg.ShopName)
	_, _ = fmt.Fprintf(out, "Location:   %s\n", cfg.Location)
	_, _ = fmt.Fprintf(out, "Inquiries:  %s\n", cfg.InquiryNumber)
	_, _ = fmt.Fprintf(out, "WhatsApp:   %s\n", cfg.WhatsappGroup)
	_, _ = fmt.Fprintf(out, "Order form: %s\n", cfg.OrderFormURL)
	_, _ = fmt.Fprintf(out, "Webhook:    %s\n", webhook)
	_, _ = fmt.Fprintf(out, "Storage:    %s\n", sf.Settings.Storage)
	if sf.Settings.DeviceID != "" {
		_, _ = fmt.Fprintf(out, "Device:     %s\n", sf.Settings.DeviceID)
	}
	if configsync.IsTestEndpoint(cfg.WebhookURL) {
		_, _ = fmt.Fprintln(out, "\n⚠ This is a test webhook; it only answers while the workflow editor is listening.")
	}
	return nil
}

// ConfigSetCommand updates shop settings locally and pushes them to the backend.
func ConfigSetCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	cfg := sf.Config.Current()

	fs := flag.NewFlagSet("config set", flag.ContinueOnError)
	webhook := fs.String("webhook-url", cfg.WebhookURL, "Backend webhook URL")
	shopName := fs.String("shop-name", cfg.ShopName, "Shop name")
	location := fs.String("location", cfg.Location, "Shop location")
	inquiry := fs.String("inquiry-number", cfg.InquiryNumber, "Customer inquiry phone number")
	group := fs.String("whatsapp-group", cfg.WhatsappGroup, "WhatsApp group invite link")
	form := fs.String("order-form-url", cfg.OrderFormURL, "Order form link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.WebhookURL = *webhook
	cfg.ShopName = *shopName
	cfg.Location = *location
	cfg.InquiryNumber = *inquiry
	cfg.WhatsappGroup = *group
	cfg.OrderFormURL = *form

	res := sf.Config.Save(ctx, cfg)
	switch res.Status {
	case outcome.StatusSuccess:
		_, _ = fmt.Fprintf(out, "✓ %s\n", res.Message)
	case outcome.StatusPartial:
		_, _ = fmt.Fprintf(out, "⚠ %s\n", res.Message)
		sf.Logger.Debug("cloud save detail", "err", res.Err)
	default:
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	}
	return nil
}

// ConfigPingCommand checks that the backend webhook answers.
func ConfigPingCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("config ping", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := sf.Config.Ping(ctx); err != nil {
		return userError(err)
	}
	_, _ = fmt.Fprintln(out, "✓ Webhook is reachable")
	return nil
}
