package storefront

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/angelmondragon/aurana-storefront/internal/cart"
	"github.com/angelmondragon/aurana-storefront/internal/catalog"
	"github.com/angelmondragon/aurana-storefront/internal/customers"
	"github.com/angelmondragon/aurana-storefront/pkg/enums"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultTitle is the page title for visitors without a customer code.
const DefaultTitle = "Элитный шоколад ручной работы"

// HintText explains why the order button is disabled.
const HintText = "Добавьте хотя бы один товар, чтобы оформить заказ."

// Card is a product card with the quantity currently in the page's cart.
type Card struct {
	ID    string
	Name  string
	Price int
	Qty   int
	State enums.LineState
}

// CardGrid is the product section of a page.
type CardGrid struct {
	ClickAction string
	Cards       []Card
}

// PageData is everything the page template needs.
type PageData struct {
	Title           string
	PageID          string
	Customer        *customers.CustomerDTO
	WalletQR        template.URL
	Cards           CardGrid
	View            cart.View
	OrderFormAction string
	HintText        string
}

// Options configures the renderer.
type Options struct {
	DefaultTitle    string
	OrderFormAction string
}

// Renderer applies cart views to the embedded html templates.
type Renderer struct {
	tmpl *template.Template
	opts Options
}

// NewRenderer parses the embedded templates.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = DefaultTitle
	}
	if opts.OrderFormAction == "" {
		opts.OrderFormAction = "/order"
	}
	tmpl, err := template.New("_root").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, opts: opts}, nil
}

// Title returns the personalized greeting for a customer, or the default title.
func (r *Renderer) Title(customer *customers.CustomerDTO) string {
	if customer == nil {
		return r.opts.DefaultTitle
	}
	return fmt.Sprintf("С возвращением, %s!", customer.GreetingName())
}

// PageInput is a page snapshot plus its optional personalization.
type PageInput struct {
	PageID   string
	Products []cart.Product
	View     cart.View
	Customer *customers.CustomerDTO
	WalletQR template.URL
}

// BuildPageData assembles the template data for a page.
func (r *Renderer) BuildPageData(in PageInput) PageData {
	return PageData{
		Title:    r.Title(in.Customer),
		PageID:   in.PageID,
		Customer: in.Customer,
		WalletQR: in.WalletQR,
		Cards: CardGrid{
			ClickAction: ClickPath(in.PageID),
			Cards:       cardsFor(in.Products, in.View),
		},
		View:            in.View,
		OrderFormAction: r.opts.OrderFormAction,
		HintText:        HintText,
	}
}

// RenderPage writes the full storefront page.
func (r *Renderer) RenderPage(w io.Writer, in PageInput) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "base", r.BuildPageData(in)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderProductCards writes the product section for a catalog with zero quantities.
func (r *Renderer) RenderProductCards(w io.Writer, products []catalog.ProductDTO) error {
	grid := CardGrid{Cards: make([]Card, 0, len(products))}
	for _, p := range products {
		grid.Cards = append(grid.Cards, Card{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	if err := r.tmpl.ExecuteTemplate(w, "cards", grid); err != nil {
		return fmt.Errorf("render product cards: %w", err)
	}
	return nil
}

// CartProducts renders the catalog as product cards and reads the cart's
// product set back from that markup.
func (r *Renderer) CartProducts(products []catalog.ProductDTO) ([]cart.Product, []cart.ScanIssue, error) {
	var buf bytes.Buffer
	if err := r.RenderProductCards(&buf, products); err != nil {
		return nil, nil, err
	}
	return cart.ScanProducts(&buf)
}

// PagePath is the address of a page.
func PagePath(pageID string) string {
	return "/pages/" + pageID
}

// ClickPath is where a page's quantity controls post to.
func ClickPath(pageID string) string {
	if pageID == "" {
		return ""
	}
	return PagePath(pageID) + "/clicks"
}

func cardsFor(products []cart.Product, view cart.View) []Card {
	indicators := make(map[string]cart.Indicator, len(view.Indicators))
	for _, ind := range view.Indicators {
		indicators[ind.ProductID] = ind
	}
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		ind, ok := indicators[p.ID]
		if !ok {
			ind.State = enums.LineStateZero
		}
		cards = append(cards, Card{ID: p.ID, Name: p.Name, Price: p.Price, Qty: ind.Quantity, State: ind.State})
	}
	return cards
}
