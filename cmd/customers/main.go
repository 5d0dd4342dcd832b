package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/aurana-storefront/internal/customers"
	"github.com/angelmondragon/aurana-storefront/pkg/config"
	"github.com/angelmondragon/aurana-storefront/pkg/db"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
	"github.com/angelmondragon/aurana-storefront/pkg/migrate"
	"github.com/joho/godotenv"
)

const (
	defaultSeedCount = 100
	defaultQRDir     = "qrcodes_for_print"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "customers"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "seed", "customers command: seed|qrcodes|first")
	count := flag.Int("count", defaultSeedCount, "number of customers that must exist (for seed)")
	dir := flag.String("dir", defaultQRDir, "output directory for printable QR codes (for qrcodes)")
	baseURL := flag.String("base-url", "", "storefront address encoded in printed QR codes; defaults to AURANA_PUBLIC_BASE_URL")

	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "customers",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "migrations", migrate.MaybeRun(ctx, cfg, logg, dbClient))

	svc, err := customers.NewService(customers.NewRepository(dbClient.DB()), customers.Options{
		WalletURL: cfg.Storefront.WalletURL,
		QRSize:    cfg.Storefront.QRSize,
	})
	requireResource(ctx, logg, "customer service", err)

	switch *cmd {
	case "seed":
		created, err := svc.Seed(ctx, *count)
		if err != nil {
			fail(ctx, logg, "seed customers", err)
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"created": created, "target": *count}), "customers seeded")
		fmt.Printf("created %d customers (target %d)\n", created, *count)

	case "qrcodes":
		target := *baseURL
		if target == "" {
			target = cfg.Storefront.PublicBaseURL
		}
		paths, err := svc.ExportQRCodes(ctx, target, *dir)
		if err != nil {
			fail(ctx, logg, "export qr codes", err)
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"files": len(paths), "dir": *dir}), "qr codes exported")
		fmt.Printf("wrote %d qr codes to %s\n", len(paths), *dir)

	case "first":
		code, err := svc.FirstCode(ctx)
		if err != nil {
			fail(ctx, logg, "load first code", err)
		}
		fmt.Println(code)

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func fail(ctx context.Context, logg *logger.Logger, step string, err error) {
	logg.Error(logg.WithField(ctx, "step", step), "customers command failed", err)
	fmt.Fprintf(os.Stderr, "%s failed: %v\n", step, err)
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
