package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/aurana-storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
)

type productRepository interface {
	ListActive(ctx context.Context) ([]models.Product, error)
}

// Service exposes the storefront catalog.
type Service interface {
	ListActive(ctx context.Context) ([]ProductDTO, error)
}

type service struct {
	repo productRepository
}

// NewService builds a catalog service backed by the repository.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActive(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, productDTOFromModel(row))
	}
	return out, nil
}
