package enums

import (
	"fmt"
	"strings"
)

// CartAction is the quantity change a storefront control requests.
type CartAction string

const (
	CartActionIncrement CartAction = "increment"
	CartActionDecrement CartAction = "decrement"
)

var validCartActions = []CartAction{
	CartActionIncrement,
	CartActionDecrement,
}

// String implements fmt.Stringer.
func (a CartAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known CartAction.
func (a CartAction) IsValid() bool {
	for _, candidate := range validCartActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseCartAction converts raw input into a CartAction.
func ParseCartAction(value string) (CartAction, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validCartActions {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart action %q", value)
}
