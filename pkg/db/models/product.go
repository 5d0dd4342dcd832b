package models

// Product is a catalog entry rendered as a product card on the storefront.
type Product struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name;not null"`
	Price    int    `gorm:"column:price;not null"`
	Position int    `gorm:"column:position;not null;default:0"`
	IsActive bool   `gorm:"column:active;not null;default:true"`
}

func (Product) TableName() string {
	return "products"
}
