package customers

import "github.com/angelmondragon/aurana-storefront/pkg/db/models"

// CustomerDTO is the customer view used to personalize the storefront.
type CustomerDTO struct {
	ID             int64  `json:"id"`
	SecretCode     string `json:"secret_code"`
	Name           string `json:"name,omitempty"`
	IsWalletActive bool   `json:"is_wallet_active"`
}

// GreetingName returns the registered name or the generic guest greeting.
func (c CustomerDTO) GreetingName() string {
	if c.Name == "" {
		return GuestName
	}
	return c.Name
}

// GuestName addresses a customer who has not registered a name yet.
const GuestName = "дорогой гость"

func customerDTOFromModel(m models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:             m.ID,
		SecretCode:     m.QRCodeSecret,
		Name:           m.DisplayName(),
		IsWalletActive: m.IsWalletActive,
	}
}
