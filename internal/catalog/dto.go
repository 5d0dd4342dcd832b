package catalog

import "github.com/angelmondragon/aurana-storefront/pkg/db/models"

// ProductDTO is the catalog entry rendered as a product card.
type ProductDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Position int    `json:"position"`
}

func productDTOFromModel(m models.Product) ProductDTO {
	return ProductDTO{
		ID:       m.ID,
		Name:     m.Name,
		Price:    m.Price,
		Position: m.Position,
	}
}
