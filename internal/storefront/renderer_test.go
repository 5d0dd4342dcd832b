package storefront

import (
	"bytes"
	"strings"
	"testing"

	"github.com/angelmondragon/aurana-storefront/internal/cart"
	"github.com/angelmondragon/aurana-storefront/internal/catalog"
	"github.com/angelmondragon/aurana-storefront/internal/customers"
	"github.com/angelmondragon/aurana-storefront/pkg/enums"
	"github.com/angelmondragon/aurana-storefront/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var testCatalog = []catalog.ProductDTO{
	{ID: "truffle", Name: "Трюфели", Price: 1200, Position: 1},
	{ID: "dark", Name: "Горький <70%>", Price: 650, Position: 2},
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{OrderFormAction: "https://orders.example.com/submit"})
	require.NoError(t, err)
	return r
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attrOf(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func TestCartProductsRoundTripThroughMarkup(t *testing.T) {
	r := newTestRenderer(t)

	products, issues, err := r.CartProducts(testCatalog)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, []cart.Product{
		{ID: "truffle", Name: "Трюфели", Price: 1200},
		{ID: "dark", Name: "Горький <70%>", Price: 650},
	}, products)
}

func renderPage(t *testing.T, r *Renderer, in PageInput) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, in))
	return parse(t, buf.String())
}

func TestRenderEmptyPage(t *testing.T) {
	r := newTestRenderer(t)
	products, _, err := r.CartProducts(testCatalog)
	require.NoError(t, err)
	c := cart.NewController(products, money.NewFormatter("en"))

	doc := renderPage(t, r, PageInput{PageID: "p-1", Products: products, View: c.Render()})

	items := findByID(doc, "cart-items")
	require.NotNil(t, items)
	assert.Equal(t, cart.EmptyMessage, textOf(items))

	field := findByID(doc, "order_details_json")
	require.NotNil(t, field)
	value, _ := attrOf(field, "value")
	assert.Equal(t, "", value)

	submit := findByID(doc, "submit-order")
	require.NotNil(t, submit)
	_, disabled := attrOf(submit, "disabled")
	assert.True(t, disabled)

	hint := findByID(doc, "form-hint")
	require.NotNil(t, hint)
	style, _ := attrOf(hint, "style")
	assert.Contains(t, style, "block")

	assert.Equal(t, "0", textOf(findByID(doc, "qty-truffle")))
	assert.Equal(t, "0", textOf(findByID(doc, "cart-total-display")))
	state, _ := attrOf(findCard(doc, "truffle"), "data-state")
	assert.Equal(t, "zero", state)

	title := textOf(findTag(doc, "title"))
	assert.Equal(t, DefaultTitle, title)
}

func TestRenderFilledPersonalizedPage(t *testing.T) {
	r := newTestRenderer(t)
	products, _, err := r.CartProducts(testCatalog)
	require.NoError(t, err)
	c := cart.NewController(products, money.NewFormatter("en"))
	c.Handle(cart.Control{Action: enums.CartActionIncrement, ProductID: "truffle"})
	c.Handle(cart.Control{Action: enums.CartActionIncrement, ProductID: "truffle"})
	c.Handle(cart.Control{Action: enums.CartActionIncrement, ProductID: "dark"})
	view := c.Render()

	customer := &customers.CustomerDTO{SecretCode: "AbC123xy"}
	doc := renderPage(t, r, PageInput{
		PageID:   "p-2",
		Products: products,
		View:     view,
		Customer: customer,
		WalletQR: "data:image/png;base64,AAAA",
	})

	assert.Equal(t, "С возвращением, дорогой гость!", textOf(findTag(doc, "title")))
	assert.Equal(t, "2", textOf(findByID(doc, "qty-truffle")))
	assert.Equal(t, "1", textOf(findByID(doc, "qty-dark")))
	state, _ := attrOf(findCard(doc, "truffle"), "data-state")
	assert.Equal(t, "positive", state)
	assert.Equal(t, "3,050", textOf(findByID(doc, "cart-total-display")))

	items := textOf(findByID(doc, "cart-items"))
	assert.Contains(t, items, "2 шт. x 1200 ₽ = 2400 ₽")
	assert.Contains(t, items, "Горький <70%>")

	field := findByID(doc, "order_details_json")
	value, _ := attrOf(field, "value")
	assert.Equal(t, view.OrderDetails, value)

	_, disabled := attrOf(findByID(doc, "submit-order"), "disabled")
	assert.False(t, disabled)
	style, _ := attrOf(findByID(doc, "form-hint"), "style")
	assert.Contains(t, style, "none")

	register := findByID(doc, "customer_name")
	assert.NotNil(t, register, "unnamed customers see the registration form")

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, PageInput{PageID: "p-2", Products: products, View: view, Customer: customer, WalletQR: "data:image/png;base64,AAAA"}))
	assert.Contains(t, buf.String(), `src="data:image/png;base64,AAAA"`)
	assert.Contains(t, buf.String(), `action="/pages/p-2/clicks"`)
	assert.Contains(t, buf.String(), `action="https://orders.example.com/submit"`)
}

func TestTitle(t *testing.T) {
	r := newTestRenderer(t)
	assert.Equal(t, DefaultTitle, r.Title(nil))
	assert.Equal(t, "С возвращением, Анна!", r.Title(&customers.CustomerDTO{Name: "Анна"}))
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	products, _, err := r.CartProducts(testCatalog)
	require.NoError(t, err)
	c := cart.NewController(products, nil)
	c.Handle(cart.Control{Action: enums.CartActionIncrement, ProductID: "dark"})

	var first, second bytes.Buffer
	require.NoError(t, r.RenderPage(&first, PageInput{PageID: "p", Products: products, View: c.Render()}))
	require.NoError(t, r.RenderPage(&second, PageInput{PageID: "p", Products: products, View: c.Render()}))
	assert.Equal(t, first.String(), second.String())
}

func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findCard(n *html.Node, productID string) *html.Node {
	if n.Type == html.ElementNode {
		if id, ok := attrOf(n, "data-id"); ok && id == productID {
			if class, _ := attrOf(n, "class"); strings.Contains(class, "product-card") {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findCard(c, productID); found != nil {
			return found
		}
	}
	return nil
}
