package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/angelmondragon/aurana-storefront/pkg/config"
	"github.com/pressly/goose/v3"
)

// DefaultDir is the on-disk location of the migrations, used by create/validate.
const DefaultDir = "pkg/migrate/migrations"

const embeddedRoot = "migrations"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedded embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// Dialect maps a database driver onto the goose dialect and its migration subdirectory.
func Dialect(driver string) (string, string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", config.DBDriverSQLite:
		return "sqlite3", "sqlite", nil
	case config.DBDriverPostgres:
		return "postgres", "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported migration driver %q", driver)
	}
}

// Run executes a standard goose command that requires a DB connection. An empty
// dir runs the migrations embedded in the binary; otherwise dir is read from disk.
func Run(ctx context.Context, db *sql.DB, driver string, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if command == "" {
		return fmt.Errorf("command is required")
	}

	return withGoose(driver, dir, func(source string) error {
		if err := goose.RunContext(ctx, command, db, source, args...); err != nil {
			return fmt.Errorf("goose %s: %w", command, err)
		}
		return nil
	})
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, dir string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	return withGoose(driver, dir, func(source string) error {
		current, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}

		switch {
		case current == target:
			return nil

		case current < target:
			if err := goose.UpToContext(ctx, db, source, target); err != nil {
				return fmt.Errorf("goose up-to %d: %w", target, err)
			}
			return nil

		default:
			if err := goose.DownToContext(ctx, db, source, target); err != nil {
				return fmt.Errorf("goose down-to %d: %w", target, err)
			}
			return nil
		}
	})
}

// Version reports the currently applied migration version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	var version int64
	err := withGoose(driver, "", func(string) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func withGoose(driver string, dir string, fn func(source string) error) error {
	dialect, subdir, err := Dialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if dir == "" {
		goose.SetBaseFS(embedded)
		defer goose.SetBaseFS(nil)
		return fn(embeddedRoot + "/" + subdir)
	}

	goose.SetBaseFS(nil)
	return fn(filepath.Join(dir, subdir))
}
