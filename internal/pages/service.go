package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/aurana-storefront/internal/cart"
	"github.com/angelmondragon/aurana-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/metrics"
	"github.com/google/uuid"
)

// Snapshot is a page together with the rendered view of its cart.
type Snapshot struct {
	Page     Page
	Products []cart.Product
	View     cart.View
}

// ClickOutcome is the result of applying a click to a page.
type ClickOutcome struct {
	Result   cart.Result
	Snapshot *Snapshot
}

// Service opens storefront pages and applies quantity clicks to their carts.
type Service struct {
	store     Store
	products  []cart.Product
	formatter cart.AmountFormatter
	metrics   *metrics.CartMetrics
	now       func() time.Time
}

// NewService builds a page service for the given product set.
func NewService(store Store, products []cart.Product, formatter cart.AmountFormatter, m *metrics.CartMetrics) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("page store required")
	}
	if formatter == nil {
		return nil, fmt.Errorf("amount formatter required")
	}
	return &Service{
		store:     store,
		products:  append([]cart.Product(nil), products...),
		formatter: formatter,
		metrics:   m,
		now:       time.Now,
	}, nil
}

// Open creates a new page with an empty cart.
func (s *Service) Open(ctx context.Context, customerCode string) (*Snapshot, error) {
	now := s.now().UTC()
	page := Page{
		ID:           uuid.NewString(),
		CustomerCode: strings.TrimSpace(customerCode),
		Quantities:   map[string]int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, page); err != nil {
		return nil, wrapStoreErr(err, "create page")
	}
	s.metrics.IncPageOpened(page.CustomerCode != "")
	return s.snapshot(page, s.controllerFor(page)), nil
}

// View renders the current cart of a page.
func (s *Service) View(ctx context.Context, pageID string) (*Snapshot, error) {
	if err := validatePageID(pageID); err != nil {
		return nil, err
	}
	page, err := s.store.Get(ctx, pageID)
	if err != nil {
		return nil, wrapStoreErr(err, "load page")
	}
	return s.snapshot(*page, s.controllerFor(*page)), nil
}

// Click decodes a raw control and applies it to the page's cart. Controls that
// are not increment/decrement, and clicks on unknown products, leave the
// stored page untouched.
func (s *Service) Click(ctx context.Context, pageID string, action, productID string) (*ClickOutcome, error) {
	if err := validatePageID(pageID); err != nil {
		return nil, err
	}

	ctrl, ok := cart.DecodeControl(action, productID)
	if !ok {
		snap, err := s.View(ctx, pageID)
		if err != nil {
			return nil, err
		}
		s.metrics.IncClick("", enums.ClickOutcomeIgnored.String())
		return &ClickOutcome{
			Result:   cart.Result{Outcome: enums.ClickOutcomeIgnored, ProductID: strings.TrimSpace(productID)},
			Snapshot: snap,
		}, nil
	}

	var (
		result     cart.Result
		controller *cart.Controller
	)
	page, err := s.store.Update(ctx, pageID, func(p *Page) (bool, error) {
		controller = s.controllerFor(*p)
		result = controller.Handle(ctrl)
		if !result.Changed() {
			return false, nil
		}
		p.Quantities = controller.Quantities()
		p.UpdatedAt = s.now().UTC()
		return true, nil
	})
	if err != nil {
		return nil, wrapStoreErr(err, "update page")
	}

	s.metrics.IncClick(ctrl.Action.String(), result.Outcome.String())
	snap := s.snapshot(*page, controller)
	if result.Changed() {
		s.metrics.ObserveTotal(snap.View.Total)
	}
	return &ClickOutcome{Result: result, Snapshot: snap}, nil
}

func (s *Service) controllerFor(page Page) *cart.Controller {
	c := cart.NewController(s.products, s.formatter)
	c.Restore(page.Quantities)
	return c
}

func (s *Service) snapshot(page Page, c *cart.Controller) *Snapshot {
	return &Snapshot{Page: page, Products: c.Products(), View: c.Render()}
}

func validatePageID(pageID string) error {
	if _, err := uuid.Parse(pageID); err != nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
	}
	return nil
}

func wrapStoreErr(err error, msg string) error {
	if errors.Is(err, ErrPageNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "page not found")
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
