package pages

import (
	"context"
	"errors"
	"time"
)

// ErrPageNotFound is returned when a page id is unknown or has expired.
var ErrPageNotFound = errors.New("page not found")

// Page is one load of the storefront and the cart quantities it owns.
type Page struct {
	ID           string         `json:"id"`
	CustomerCode string         `json:"customer_code,omitempty"`
	Quantities   map[string]int `json:"quantities"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (p Page) clone() Page {
	out := p
	out.Quantities = make(map[string]int, len(p.Quantities))
	for id, qty := range p.Quantities {
		out.Quantities[id] = qty
	}
	return out
}

// Mutator edits a page in place and reports whether it should be persisted.
type Mutator func(page *Page) (bool, error)

// Store keeps pages for a limited time. Update calls for the same page are
// applied one at a time.
type Store interface {
	Create(ctx context.Context, page Page) error
	Get(ctx context.Context, id string) (*Page, error)
	Update(ctx context.Context, id string, fn Mutator) (*Page, error)
}
