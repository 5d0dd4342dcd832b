package cart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ProductCardClass marks the elements that describe a product on the page.
const ProductCardClass = "product-card"

// ScanIssue describes a product card that could not be turned into a Product.
type ScanIssue struct {
	Index  int
	ID     string
	Reason string
}

func (i ScanIssue) Error() string {
	return fmt.Sprintf("product card #%d (id=%q): %s", i.Index, i.ID, i.Reason)
}

// ScanProducts reads every .product-card element of the page in document
// order. Cards without a data-id or with a price that is not a non-negative
// integer are reported as issues and left out.
func ScanProducts(r io.Reader) ([]Product, []ScanIssue, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parse page markup: %w", err)
	}

	var (
		products []Product
		issues   []ScanIssue
		index    int
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, ProductCardClass) {
			p, issue := productFromCard(n, index)
			if issue != nil {
				issues = append(issues, *issue)
			} else {
				products = append(products, p)
			}
			index++
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return products, issues, nil
}

func productFromCard(n *html.Node, index int) (Product, *ScanIssue) {
	id, hasID := attr(n, "data-id")
	id = strings.TrimSpace(id)
	if !hasID || id == "" {
		return Product{}, &ScanIssue{Index: index, Reason: "missing data-id"}
	}

	rawPrice, hasPrice := attr(n, "data-price")
	if !hasPrice {
		return Product{}, &ScanIssue{Index: index, ID: id, Reason: "missing data-price"}
	}
	price, err := strconv.Atoi(strings.TrimSpace(rawPrice))
	if err != nil || price < 0 {
		return Product{}, &ScanIssue{Index: index, ID: id, Reason: fmt.Sprintf("invalid data-price %q", rawPrice)}
	}

	name, _ := attr(n, "data-name")
	return Product{ID: id, Name: name, Price: price}, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	value, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, field := range strings.Fields(value) {
		if field == class {
			return true
		}
	}
	return false
}
