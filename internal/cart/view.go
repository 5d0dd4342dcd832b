package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EmptyMessage is shown in the cart list when nothing has been added.
const EmptyMessage = "Корзина пуста. Добавьте товар, чтобы оформить заказ."

// LineItem is one entry of the serialized order details.
type LineItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int    `json:"price"`
	Total int    `json:"total"`
}

// Summary is the row text shown under the product name in the cart list.
func (l LineItem) Summary() string {
	return fmt.Sprintf("%d шт. x %d ₽ = %d ₽", l.Qty, l.Price, l.Total)
}

// View is the complete rendered state of the cart section of a page.
type View struct {
	Lines         []LineItem  `json:"lines"`
	Total         int         `json:"total"`
	TotalDisplay  string      `json:"total_display"`
	Empty         bool        `json:"empty"`
	EmptyMessage  string      `json:"empty_message,omitempty"`
	OrderDetails  string      `json:"order_details"`
	SubmitEnabled bool        `json:"submit_enabled"`
	HintVisible   bool        `json:"hint_visible"`
	Indicators    []Indicator `json:"indicators"`
}

// Render computes the view of the current cart. It does not modify the cart
// and returns identical output for identical state.
func (c *Controller) Render() View {
	view := View{
		Lines:      []LineItem{},
		Indicators: make([]Indicator, 0, len(c.order)),
	}

	for _, id := range c.order {
		l := c.lines[id]
		view.Indicators = append(view.Indicators, newIndicator(id, l.qty))
		if l.qty <= 0 {
			continue
		}
		lineTotal := l.total()
		view.Total += lineTotal
		view.Lines = append(view.Lines, LineItem{
			ID:    l.product.ID,
			Name:  l.product.Name,
			Qty:   l.qty,
			Price: l.product.Price,
			Total: lineTotal,
		})
	}

	view.TotalDisplay = c.formatter.FormatAmount(view.Total)

	if len(view.Lines) == 0 {
		view.Empty = true
		view.EmptyMessage = EmptyMessage
		view.OrderDetails = ""
		view.SubmitEnabled = false
		view.HintVisible = true
		return view
	}

	view.OrderDetails = encodeOrderDetails(view.Lines)
	view.SubmitEnabled = true
	view.HintVisible = false
	return view
}

// encodeOrderDetails pretty-prints the line items with a two-space indent and
// without HTML escaping, matching the hidden form field format.
func encodeOrderDetails(lines []LineItem) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lines); err != nil {
		// LineItem holds only strings and ints.
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
