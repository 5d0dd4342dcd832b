package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/aurana-storefront/pkg/config"
	"github.com/angelmondragon/aurana-storefront/pkg/db"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
)

// MaybeRun applies the embedded migrations at startup when the auto-migrate
// flag is enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.Features.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "driver": client.Driver()}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (auto-run)")

	if err := Run(ctx, sqlDB, client.Driver(), "", "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
