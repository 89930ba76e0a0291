package transport

import (
	"time"

	"github.com/Skotchmaster/ecommerce/internal/models"
)

type CreateOrderItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreateOrderRequest.Username is honoured only for administrators placing an
// order on behalf of another user.
type CreateOrderRequest struct {
	Username  string            `json:"username"`
	AddressID uint              `json:"address_id"`
	PaymentID uint              `json:"payment_id"`
	Items     []CreateOrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsAdmin     bool      `json:"is_admin"`
}

type WebResponse struct {
	Data   any             `json:"data,omitempty"`
	Errors *ErrorBody      `json:"errors,omitempty"`
	Paging *PagingResponse `json:"paging,omitempty"`
}

type PagingResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPage   int   `json:"totalPage"`
	Size        int   `json:"size"`
	TotalItems  int64 `json:"totalItems"`
}

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Entity    string `json:"entity,omitempty"`
	Field     string `json:"field,omitempty"`
	ProductID uint   `json:"product_id,omitempty"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AddressResponse struct {
	ID          uint   `json:"id"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
	PhoneNumber string `json:"phone_number"`
}

type PaymentResponse struct {
	ID            uint   `json:"id"`
	PaymentType   string `json:"payment_type"`
	Provider      string `json:"provider"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

type ProductSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type OrderItemResponse struct {
	ID       uint           `json:"id"`
	Product  ProductSummary `json:"product"`
	Quantity int64          `json:"quantity"`
	Price    int64          `json:"price"`
}

type OrderResponse struct {
	ID               uint                `json:"id"`
	Total            int64               `json:"total"`
	Status           string              `json:"status"`
	User             UserResponse        `json:"user"`
	Address          AddressResponse     `json:"address"`
	Payment          PaymentResponse     `json:"payment"`
	Items            []OrderItemResponse `json:"items"`
	CreatedBy        string              `json:"created_by"`
	CreationDate     time.Time           `json:"creation_date"`
	LastModifiedBy   *string             `json:"last_modified_by,omitempty"`
	LastModifiedDate *time.Time          `json:"last_modified_date,omitempty"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID: it.ID,
			Product: ProductSummary{
				ID:    it.ProductID,
				Name:  it.Product.Name,
				Price: it.Product.Price,
			},
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return OrderResponse{
		ID:     o.ID,
		Total:  o.Total,
		Status: string(o.Status),
		User: UserResponse{
			ID:       o.User.ID,
			Username: o.User.Username,
			Email:    o.User.Email,
		},
		Address: AddressResponse{
			ID:          o.Address.ID,
			Address:     o.Address.Address,
			City:        o.Address.City,
			Province:    o.Address.Province,
			PostalCode:  o.Address.PostalCode,
			PhoneNumber: o.Address.PhoneNumber,
		},
		Payment: PaymentResponse{
			ID:            o.Payment.ID,
			PaymentType:   string(o.Payment.PaymentType),
			Provider:      o.Payment.Provider,
			AccountName:   o.Payment.AccountName,
			AccountNumber: o.Payment.AccountNumber,
		},
		Items:            items,
		CreatedBy:        o.CreatedBy,
		CreationDate:     o.CreationDate,
		LastModifiedBy:   o.LastModifiedBy,
		LastModifiedDate: o.LastModifiedDate,
	}
}

func NewOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
