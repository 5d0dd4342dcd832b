package enums

// ClickOutcome labels what a storefront click did to the cart.
type ClickOutcome string

const (
	ClickOutcomeChanged ClickOutcome = "changed"
	ClickOutcomeNoop    ClickOutcome = "noop"
	ClickOutcomeIgnored ClickOutcome = "ignored"
)

// String implements fmt.Stringer.
func (o ClickOutcome) String() string {
	return string(o)
}
