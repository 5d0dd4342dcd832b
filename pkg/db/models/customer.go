package models

// Customer is a holder of a printed QR card identified by its secret code.
type Customer struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement"`
	QRCodeSecret   string  `gorm:"column:qr_code_secret;not null;uniqueIndex"`
	CustomerName   *string `gorm:"column:customer_name"`
	IsWalletActive bool    `gorm:"column:is_wallet_active;not null;default:false"`
	OrderHistory   *string `gorm:"column:order_history"`
}

func (Customer) TableName() string {
	return "customers"
}

// DisplayName returns the registered name or an empty string.
func (c Customer) DisplayName() string {
	if c.CustomerName == nil {
		return ""
	}
	return *c.CustomerName
}
