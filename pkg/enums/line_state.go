package enums

// LineState describes whether a cart line currently contributes to the order.
type LineState string

const (
	LineStateZero     LineState = "zero"
	LineStatePositive LineState = "positive"
)

// String implements fmt.Stringer.
func (s LineState) String() string {
	return string(s)
}

// LineStateFor maps a quantity onto its line state.
func LineStateFor(qty int) LineState {
	if qty > 0 {
		return LineStatePositive
	}
	return LineStateZero
}
