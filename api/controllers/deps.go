package controllers

import (
	"context"
	"html/template"
	"io"

	"github.com/angelmondragon/aurana-storefront/internal/customers"
	"github.com/angelmondragon/aurana-storefront/internal/pages"
	"github.com/angelmondragon/aurana-storefront/internal/storefront"
)

// PageService opens pages and applies clicks to their carts.
type PageService interface {
	Open(ctx context.Context, customerCode string) (*pages.Snapshot, error)
	View(ctx context.Context, pageID string) (*pages.Snapshot, error)
	Click(ctx context.Context, pageID, action, productID string) (*pages.ClickOutcome, error)
}

// CustomerService personalizes pages for QR card holders.
type CustomerService interface {
	Lookup(ctx context.Context, code string) (*customers.CustomerDTO, error)
	Register(ctx context.Context, code, name string) (bool, error)
	WalletQR(code string) (template.URL, error)
}

// PageRenderer writes a full storefront page.
type PageRenderer interface {
	RenderPage(w io.Writer, in storefront.PageInput) error
}
