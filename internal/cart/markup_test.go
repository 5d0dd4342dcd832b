package cart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!doctype html>
<html><body>
<div class="grid">
  <div class="product-card featured" data-id="truffle" data-price="1200" data-name="Трюфели">
    <button class="qty-minus" data-id="truffle">-</button>
    <span id="qty-truffle">0</span>
    <button class="qty-plus" data-id="truffle">+</button>
  </div>
  <div class="product-card" data-id="dark" data-price=" 650 " data-name="Горький &amp; тёмный"></div>
  <div class="product-card" data-price="100" data-name="no id"></div>
  <div class="product-card" data-id="bad" data-price="12abc" data-name="bad"></div>
  <div class="product-card" data-id="neg" data-price="-5" data-name="neg"></div>
  <div class="product-card" data-id="noprice" data-name="np"></div>
  <div class="product-cardigan" data-id="nope" data-price="1"></div>
  <section><article class="product-card" data-id="nested" data-price="0"></article></section>
</div>
</body></html>`

func TestScanProducts(t *testing.T) {
	products, issues, err := ScanProducts(strings.NewReader(samplePage))
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, Product{ID: "truffle", Name: "Трюфели", Price: 1200}, products[0])
	assert.Equal(t, Product{ID: "dark", Name: "Горький & тёмный", Price: 650}, products[1])
	assert.Equal(t, Product{ID: "nested", Name: "", Price: 0}, products[2])

	require.Len(t, issues, 4)
	assert.Equal(t, 2, issues[0].Index)
	assert.Contains(t, issues[0].Error(), "missing data-id")
	assert.Equal(t, "bad", issues[1].ID)
	assert.Equal(t, "neg", issues[2].ID)
	assert.Contains(t, issues[3].Reason, "missing data-price")
}

func TestScanProductsEmptyPage(t *testing.T) {
	products, issues, err := ScanProducts(strings.NewReader("<html><body><p>closed</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, issues)
}

func TestScannedProductsFeedController(t *testing.T) {
	products, _, err := ScanProducts(strings.NewReader(samplePage))
	require.NoError(t, err)

	c := NewController(products, nil)
	ctrl, ok := DecodeControl("increment", "dark")
	require.True(t, ok)
	c.Handle(ctrl)

	view := c.Render()
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 650, view.Total)
	assert.Contains(t, view.OrderDetails, `"name": "Горький & тёмный"`)
}
