package cart

// Product is a storefront item as described by its product card.
type Product struct {
	ID    string
	Name  string
	Price int
}

type line struct {
	product Product
	qty     int
}

func (l *line) total() int {
	return l.qty * l.product.Price
}
