package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
)

// ValidateDir validates every dialect directory below dir on disk.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	return validateDialects(os.DirFS(dir), ".")
}

// ValidateEmbedded validates the migrations compiled into the binary.
func ValidateEmbedded() error {
	return validateDialects(embedded, embeddedRoot)
}

func validateDialects(fsys fs.FS, root string) error {
	versions := map[string][]string{}
	for _, subdir := range []string{"sqlite", "postgres"} {
		found, err := validateFS(fsys, path.Join(root, subdir))
		if err != nil {
			return fmt.Errorf("%s: %w", subdir, err)
		}
		versions[subdir] = found
	}

	// both dialects must carry the same migration set.
	if strings.Join(versions["sqlite"], ",") != strings.Join(versions["postgres"], ",") {
		return fmt.Errorf("sqlite and postgres migrations differ: %v vs %v", versions["sqlite"], versions["postgres"])
	}
	return nil
}

// validateFS validates migration filenames + basic SQL headers and returns the
// filenames in directory order.
func validateFS(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename
	var names []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		full := path.Join(dir, name)
		b, err := fs.ReadFile(fsys, full)
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", full, err)
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
		names = append(names, name)
	}

	return names, nil
}
