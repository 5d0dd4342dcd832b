package cart

import (
	"strings"

	"github.com/angelmondragon/aurana-storefront/pkg/enums"
	"github.com/angelmondragon/aurana-storefront/pkg/money"
)

// IndicatorPrefix prefixes the product id to form the quantity indicator element id.
const IndicatorPrefix = "qty-"

// AmountFormatter renders a grand total for display.
type AmountFormatter interface {
	FormatAmount(amount int) string
}

// Control is a decoded quantity control: the action it requests and the product it targets.
type Control struct {
	Action    enums.CartAction
	ProductID string
}

// DecodeControl turns raw control attributes into a Control. It reports false
// for anything that is not an increment or decrement control.
func DecodeControl(action, productID string) (Control, bool) {
	parsed, err := enums.ParseCartAction(action)
	if err != nil {
		return Control{}, false
	}
	return Control{Action: parsed, ProductID: strings.TrimSpace(productID)}, true
}

// Indicator is the on-page quantity display of a single product.
type Indicator struct {
	ProductID string          `json:"product_id"`
	ElementID string          `json:"element_id"`
	Quantity  int             `json:"quantity"`
	State     enums.LineState `json:"state"`
}

func newIndicator(productID string, qty int) Indicator {
	return Indicator{
		ProductID: productID,
		ElementID: IndicatorPrefix + productID,
		Quantity:  qty,
		State:     enums.LineStateFor(qty),
	}
}

// Result describes what a click did.
type Result struct {
	Outcome   enums.ClickOutcome
	Action    enums.CartAction
	ProductID string
	Before    int
	After     int
}

// Handled reports whether the click passed the control filter and targeted a known product.
func (r Result) Handled() bool {
	return r.Outcome != enums.ClickOutcomeIgnored
}

// Changed reports whether the click modified a quantity.
func (r Result) Changed() bool {
	return r.Outcome == enums.ClickOutcomeChanged
}

// Indicator returns the quantity indicator update produced by a handled click.
func (r Result) Indicator() (Indicator, bool) {
	if !r.Handled() {
		return Indicator{}, false
	}
	return newIndicator(r.ProductID, r.After), true
}

// Controller owns the cart of one storefront page. The set of products is
// fixed at construction; only quantities change afterwards.
type Controller struct {
	order     []string
	lines     map[string]*line
	formatter AmountFormatter
}

// NewController builds a cart with a zero-quantity line per product, in the
// given order. Products without an id or with a negative price are dropped; a
// repeated id keeps its first position and takes the later product data.
func NewController(products []Product, formatter AmountFormatter) *Controller {
	if formatter == nil {
		formatter = money.NewFormatter(money.DefaultLocale)
	}
	c := &Controller{
		order:     make([]string, 0, len(products)),
		lines:     make(map[string]*line, len(products)),
		formatter: formatter,
	}
	for _, p := range products {
		if p.ID == "" || p.Price < 0 {
			continue
		}
		if existing, ok := c.lines[p.ID]; ok {
			existing.product = p
			continue
		}
		c.order = append(c.order, p.ID)
		c.lines[p.ID] = &line{product: p}
	}
	return c
}

// Handle applies a decoded control. Increment always adds one; decrement only
// removes one while the quantity is positive. Unknown products are left alone.
func (c *Controller) Handle(ctrl Control) Result {
	res := Result{Action: ctrl.Action, ProductID: ctrl.ProductID}
	if !ctrl.Action.IsValid() {
		res.Outcome = enums.ClickOutcomeIgnored
		return res
	}

	l, ok := c.lines[ctrl.ProductID]
	if !ok {
		res.Outcome = enums.ClickOutcomeIgnored
		return res
	}

	res.Before = l.qty
	switch ctrl.Action {
	case enums.CartActionIncrement:
		l.qty++
	case enums.CartActionDecrement:
		if l.qty > 0 {
			l.qty--
		}
	}
	res.After = l.qty

	if res.After != res.Before {
		res.Outcome = enums.ClickOutcomeChanged
	} else {
		res.Outcome = enums.ClickOutcomeNoop
	}
	return res
}

// Quantity returns the current quantity of a product and whether it is in the cart.
func (c *Controller) Quantity(productID string) (int, bool) {
	l, ok := c.lines[productID]
	if !ok {
		return 0, false
	}
	return l.qty, true
}

// Quantities returns a copy of the positive quantities keyed by product id.
func (c *Controller) Quantities() map[string]int {
	out := make(map[string]int)
	for _, id := range c.order {
		if qty := c.lines[id].qty; qty > 0 {
			out[id] = qty
		}
	}
	return out
}

// Restore loads previously saved quantities. Unknown ids are ignored and
// negative values are treated as zero.
func (c *Controller) Restore(quantities map[string]int) {
	for _, id := range c.order {
		qty := quantities[id]
		if qty < 0 {
			qty = 0
		}
		c.lines[id].qty = qty
	}
}

// Products returns the cart's products in document order.
func (c *Controller) Products() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id].product)
	}
	return out
}
