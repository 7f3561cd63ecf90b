// ABOUTME: Entry point for the phonestore storefront CLI and MCP server
// ABOUTME: Routes to the terminal shop, staff console, or MCP server based on arguments
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/charm"
	"github.com/harperreed/phonestore/cli"
	"github.com/harperreed/phonestore/config"
)

const version = "0.2.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	storage := flag.String("storage", "", "Storage backend: badger, sqlite, charm, memory (default from settings)")
	webhookURL := flag.String("webhook-url", "", "Backend webhook URL (overrides settings)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("phonestore version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          config.AppName,
	})

	settings, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}
	if settings.EnsureDeviceID() {
		if err := config.Save(settings); err != nil {
			logger.Warn("failed to save device id", "err", err)
		}
	}
	if *storage != "" {
		settings.Storage = *storage
	}
	if *webhookURL != "" {
		settings.WebhookURL = *webhookURL
	}
	if err := settings.Validate(); err != nil {
		logger.Fatal("invalid settings", "err", err)
	}

	logger.SetLevel(settings.Level())
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sf, err := app.Open(settings, logger)
	if err != nil {
		logger.Fatal("failed to open storefront", "err", err)
	}

	code := run(ctx, sf, args[0], args[1:])
	if err := sf.Close(); err != nil {
		logger.Error("failed to close storage", "err", err)
	}
	stop()
	os.Exit(code)
}

func run(ctx context.Context, sf *app.Storefront, command string, args []string) int {
	sf.Init(ctx)
	out := os.Stdout

	var err error
	switch command {
	case "shop":
		err = cli.ShopCommand(ctx, sf, args)

	case "catalog":
		err = cli.CatalogCommand(ctx, sf, out, args)

	case "points":
		err = cli.PointsCommand(sf, out, args)

	case "mcp":
		err = cli.MCPCommand(ctx, sf, version)

	case "config":
		sub, subArgs, ok := subcommand(command, args)
		if !ok {
			return 1
		}
		switch sub {
		case "show":
			err = cli.ConfigShowCommand(sf, out, subArgs)
		case "set":
			err = cli.ConfigSetCommand(ctx, sf, out, subArgs)
		case "ping":
			err = cli.ConfigPingCommand(ctx, sf, out, subArgs)
		default:
			return unknown(command + " " + sub)
		}

	case "auth":
		sub, subArgs, ok := subcommand(command, args)
		if !ok {
			return 1
		}
		switch sub {
		case "login":
			err = cli.AuthLoginCommand(ctx, sf, out, subArgs)
		case "signup":
			err = cli.AuthSignupCommand(ctx, sf, out, subArgs)
		case "logout":
			err = cli.AuthLogoutCommand(sf, out, subArgs)
		case "status":
			err = cli.AuthStatusCommand(sf, out, subArgs)
		default:
			return unknown(command + " " + sub)
		}

	case "staff":
		sub, subArgs, ok := subcommand(command, args)
		if !ok {
			return 1
		}
		switch sub {
		case "sale":
			err = cli.StaffSaleCommand(ctx, sf, out, subArgs)
		case "inventory":
			err = cli.StaffInventoryCommand(ctx, sf, out, subArgs)
		case "offer":
			err = cli.StaffOfferCommand(ctx, sf, out, subArgs)
		case "customers":
			err = cli.StaffCustomersCommand(ctx, sf, out, subArgs)
		case "history":
			err = cli.StaffHistoryCommand(ctx, sf, out, subArgs)
		default:
			return unknown(command + " " + sub)
		}

	case "storage":
		sub, subArgs, ok := subcommand(command, args)
		if !ok {
			return 1
		}
		if sf.Charm == nil {
			fmt.Fprintf(os.Stderr, "Error: storage %s requires --storage charm (current: %s)\n", sub, sf.Settings.Storage)
			return 1
		}
		switch sub {
		case "sync":
			err = charm.SyncNowCommand(sf.Charm, out, subArgs)
		case "status":
			err = charm.SyncStatusCommand(sf.Charm, out, subArgs)
		case "wipe":
			err = charm.SyncWipeCommand(sf.Charm, out, subArgs)
		default:
			return unknown(command + " " + sub)
		}

	default:
		return unknown(command)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func subcommand(command string, args []string) (string, []string, bool) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s requires a subcommand\n", command)
		printUsage()
		return "", nil, false
	}
	return args[0], args[1:], true
}

func unknown(command string) int {
	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
	printUsage()
	return 1
}

func printUsage() {
	fmt.Printf(`phonestore - Phone shop storefront, staff console, and MCP server

Version: %s

USAGE:
  phonestore [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --storage <backend>    Storage backend: badger, sqlite, charm, memory
  --webhook-url <url>    Backend webhook URL (overrides settings)
  --verbose              Enable debug logging

COMMANDS:
  shop                   Open the interactive terminal shop
  catalog                List phones
  points                 Show reward points, level, and badges
  config                 Shop settings
  auth                   Staff sign-in
  staff                  Staff console
  storage                Charm cloud storage (with --storage charm)
  mcp                    Start MCP server for agent integrations

SHOP:
  phonestore shop                 Browse, add to cart, and check out
  phonestore catalog              List phones
    --query <text>                  Search brand or model
    --category <name>               All, Flagship, Mid-range, Budget, Used
    --refresh                       Fetch the latest inventory first
  phonestore points               Show reward progress

CONFIG COMMANDS:
  phonestore config show          Show shop settings
  phonestore config set           Update settings and push them to the backend
    --webhook-url <url>             Backend webhook URL
    --shop-name <name>              Shop name
    --location <place>              Shop location
    --inquiry-number <phone>        Customer inquiry number
    --whatsapp-group <link>         WhatsApp group invite link
    --order-form-url <link>         Order form link
  phonestore config ping          Check the webhook is reachable

AUTH COMMANDS:
  phonestore auth login           Sign in as staff
    --email <email>                 Staff email (required)
    --password <password>           Password (prompted when omitted)
  phonestore auth signup          Request a staff account
    --name <name>                   Full name
    --email <email>                 Email
    --phone <phone>                 Phone number
  phonestore auth logout          Sign out
  phonestore auth status          Show the current session

STAFF COMMANDS (sign-in required):
  phonestore staff sale           Record an in-store sale
    --customer <name>               Customer name (required)
    --phone <+254...>               Customer phone (required)
    --model <model>                 Phone sold (required)
    --amount <ksh>                  Sale amount (required)
    --payment <mode>                mpesa, cash, card (default: mpesa)
    --seller <name>                 Sales person (default: signed-in staff)
    --national-id <id>              Customer national ID

  phonestore staff inventory      Register a product or adjust stock
    --action <type>                 new_product, add_stock, sale (default: add_stock)
    --product <id>                  Product ID (add_stock, sale)
    --brand <brand>                 Brand (new_product)
    --model <model>                 Model (new_product)
    --quantity <n>                  Units
    --price <ksh>                   Unit price (new_product)
    --minimum <n>                   Low-stock threshold (default: 5)

  phonestore staff offer          Broadcast a deal to the WhatsApp group
    --model <model>                 Phone model (required)
    --price <ksh>                   Offer price (required)
    --features <text>               Highlights
    --deal <type>                   new-arrival, discount, flash-sale

  phonestore staff customers [--by field] <query>
                                  Search by name, phone, model, or nationalId
  phonestore staff history        Recent sales and stock movements

STORAGE COMMANDS:
  phonestore --storage charm storage sync     Sync with the charm cloud
  phonestore --storage charm storage status   Show sync status
  phonestore --storage charm storage wipe     Reset local data

EXAMPLES:
  # Point the shop at your backend
  phonestore config set --webhook-url https://n8n.example.com/webhook/shop

  # Browse and order
  phonestore shop

  # Record a sale after signing in
  phonestore auth login --email jane@shop.co.ke
  phonestore staff sale --customer "Ann W" --phone +254700111222 --model "Pixel 8" --amount 65000

ENVIRONMENT:
  PHONESTORE_WEBHOOK_URL, PHONESTORE_STORAGE, PHONESTORE_DATA_DIR, PHONESTORE_LOG_LEVEL,
  PHONESTORE_REQUEST_TIMEOUT, PHONESTORE_RATE_LIMIT, PHONESTORE_CHARM_HOST
  Values may also be placed in a .env file in the working directory.

`, version)
}
