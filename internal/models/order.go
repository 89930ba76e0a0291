package models

type OrderStatus string

const (
	OrderCreated    OrderStatus = "CREATED"
	OrderPaid       OrderStatus = "PAID"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

var orderStatuses = []OrderStatus{
	OrderCreated, OrderPaid, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range orderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Order is immutable after creation apart from Status.
type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Total     int64       `gorm:"not null"                 json:"total"`
	Status    OrderStatus `gorm:"size:16;not null;index"   json:"status"`
	UserID    uint        `gorm:"index;not null"           json:"user_id"`
	User      User        `                                json:"user"`
	AddressID uint        `gorm:"not null"                 json:"address_id"`
	Address   Address     `                                json:"address"`
	PaymentID uint        `gorm:"not null"                 json:"payment_id"`
	Payment   Payment     `                                json:"payment"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
	Auditable
}

// OrderItem.Price is the line total after discount, not the unit price.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID   uint    `gorm:"index;not null"               json:"order_id"`
	ProductID uint    `gorm:"not null"                     json:"product_id"`
	Product   Product `                                    json:"product"`
	Quantity  int64   `gorm:"not null;check:quantity > 0"  json:"quantity"`
	Price     int64   `gorm:"not null"                     json:"price"`
}
