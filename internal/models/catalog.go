package models

type ProductCategory struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:128;not null"         json:"name"`
	Description string `gorm:"type:text"                 json:"description"`
}

type Discount struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"              json:"id"`
	Name        string `gorm:"size:128;not null"                      json:"name"`
	Description string `gorm:"type:text"                              json:"description"`
	Percentage  int64  `gorm:"not null;check:percentage BETWEEN 0 AND 100" json:"percentage"`
	MinPurchase int64  `gorm:"not null;default:0"                     json:"min_purchase"`
	MaxDiscount int64  `gorm:"not null;default:0"                     json:"max_discount"`
	Active      bool   `gorm:"not null;default:false"                 json:"active"`
	Auditable
}

type ProductInventory struct {
	ID       uint  `gorm:"primaryKey;autoIncrement"     json:"id"`
	Quantity int64 `gorm:"not null;check:quantity >= 0"  json:"quantity"`
	Auditable
}

type Product struct {
	ID           uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string           `gorm:"size:255;not null"        json:"name"`
	Description  string           `gorm:"type:text"                json:"description"`
	Price        int64            `gorm:"not null;check:price >= 0" json:"price"`
	ProductImage string           `gorm:"size:512"                 json:"product_image"`
	CategoryID   *uint            `                                json:"category_id,omitempty"`
	Category     *ProductCategory `                                json:"category,omitempty"`
	InventoryID  uint             `gorm:"not null;uniqueIndex"     json:"inventory_id"`
	Inventory    ProductInventory `                                json:"inventory"`
	DiscountID   *uint            `                                json:"discount_id,omitempty"`
	Discount     *Discount        `                                json:"discount,omitempty"`
	Auditable
}
