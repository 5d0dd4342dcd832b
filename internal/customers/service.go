package customers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/angelmondragon/aurana-storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/qr"
	"github.com/angelmondragon/aurana-storefront/pkg/security"
	"gorm.io/gorm"
)

// maxSeedRounds bounds the retries when freshly generated codes collide.
const maxSeedRounds = 10

type customerRepository interface {
	FindBySecret(ctx context.Context, secret string) (*models.Customer, error)
	UpdateName(ctx context.Context, secret, name string) (int64, error)
	Count(ctx context.Context) (int64, error)
	InsertSecrets(ctx context.Context, secrets []string) (int64, error)
	ListSecrets(ctx context.Context) ([]string, error)
	FirstSecret(ctx context.Context) (string, error)
}

// Options configures QR generation.
type Options struct {
	WalletURL string
	QRSize    int
}

// Service handles customer personalization and the QR card tooling.
type Service struct {
	repo customerRepository
	opts Options
}

// NewService builds a customer service backed by the repository.
func NewService(repo customerRepository, opts Options) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if strings.TrimSpace(opts.WalletURL) == "" {
		return nil, fmt.Errorf("wallet url required")
	}
	if _, err := url.Parse(opts.WalletURL); err != nil {
		return nil, fmt.Errorf("invalid wallet url: %w", err)
	}
	if opts.QRSize <= 0 {
		opts.QRSize = qr.DefaultSize
	}
	return &Service{repo: repo, opts: opts}, nil
}

// Lookup finds the customer holding code.
func (s *Service) Lookup(ctx context.Context, code string) (*CustomerDTO, error) {
	code = strings.TrimSpace(code)
	if !security.IsSecretCode(code) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}

	customer, err := s.repo.FindBySecret(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	dto := customerDTOFromModel(*customer)
	return &dto, nil
}

// Register stores the name for code. Blank names or codes are ignored, and so
// is an unknown code; the returned flag reports whether a row was updated.
func (s *Service) Register(ctx context.Context, code, name string) (bool, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return false, nil
	}

	affected, err := s.repo.UpdateName(ctx, code, name)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register customer")
	}
	return affected > 0, nil
}

// Seed makes sure at least target customers exist, generating new random
// codes as needed. It returns the number of customers created.
func (s *Service) Seed(ctx context.Context, target int) (int, error) {
	if target <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "seed target must be positive")
	}

	created := 0
	for round := 0; round < maxSeedRounds; round++ {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return created, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customers")
		}
		missing := target - int(count)
		if missing <= 0 {
			return created, nil
		}

		codes, err := uniqueCodes(missing)
		if err != nil {
			return created, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate codes")
		}
		inserted, err := s.repo.InsertSecrets(ctx, codes)
		if err != nil {
			return created, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert customers")
		}
		created += int(inserted)
	}
	return created, pkgerrors.New(pkgerrors.CodeConflict, "could not generate enough unique codes")
}

// FirstCode returns the oldest customer's secret code, handy for manual testing.
func (s *Service) FirstCode(ctx context.Context) (string, error) {
	code, err := s.repo.FirstSecret(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "no customers seeded")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load first code")
	}
	return code, nil
}

// ExportQRCodes writes a printable QR image per customer into dir. Each image
// encodes baseURL followed by the customer's code.
func (s *Service) ExportQRCodes(ctx context.Context, baseURL, dir string) ([]string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base url required")
	}
	secrets, err := s.repo.ListSecrets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	paths := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, QRFileName(secret))
		if err := qr.WriteFile(path, baseURL+secret, s.opts.QRSize); err != nil {
			return paths, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write qr code")
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WalletLink is the wallet enrollment link encoded in the page QR code.
func (s *Service) WalletLink(code string) string {
	u, _ := url.Parse(s.opts.WalletURL)
	q := u.Query()
	q.Set("id", code)
	u.RawQuery = q.Encode()
	return u.String()
}

// WalletQR renders the wallet link of code as an inline PNG data URL.
func (s *Service) WalletQR(code string) (template.URL, error) {
	dataURL, err := qr.DataURL(s.WalletLink(code), s.opts.QRSize)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render wallet qr")
	}
	return dataURL, nil
}

// QRFileName is the printable image name for a customer code.
func QRFileName(code string) string {
	return "aurana_qr_" + code + ".png"
}

func uniqueCodes(n int) ([]string, error) {
	seen := make(map[string]struct{}, n)
	codes := make([]string, 0, n)
	for len(codes) < n {
		code, err := security.GenerateSecretCode(security.SecretCodeLength)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}
