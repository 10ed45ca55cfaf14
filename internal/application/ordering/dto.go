package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID  uuid.UUID         `json:"product_id" binding:"required"`
	Quantity   int               `json:"quantity" binding:"required,min=1"`
	Attributes map[string]string `json:"attributes"`
}

// UpdateCartItemRequest changes the quantity of a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID             uuid.UUID         `json:"id"`
	ProductID      uuid.UUID         `json:"product_id"`
	ProductName    string            `json:"product_name"`
	ProductSlug    string            `json:"product_slug"`
	ImageURL       string            `json:"image_url"`
	Quantity       int               `json:"quantity"`
	EffectivePrice decimal.Decimal   `json:"effective_price"`
	LineTotal      decimal.Decimal   `json:"line_total"`
	Attributes     map[string]string `json:"attributes"`
}

// CartResponse represents the cart in API responses. Prices are computed
// live from product data and are not authoritative until checkout.
type CartResponse struct {
	ID       uuid.UUID          `json:"id"`
	UserID   uuid.UUID          `json:"user_id"`
	Items    []CartItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// CheckoutRequest places an order from the user's cart
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=pay-now pay-later"`
}

// UpdateSubOrderStatusRequest updates a vendor's sub-order
type UpdateSubOrderStatusRequest struct {
	Status                string     `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
	TrackingNumber        string     `json:"tracking_number" binding:"max=100"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name"`
	VendorID    uuid.UUID         `json:"vendor_id"`
	Quantity    int               `json:"quantity"`
	Price       decimal.Decimal   `json:"price"`
	Amount      decimal.Decimal   `json:"amount"`
	Attributes  map[string]string `json:"attributes"`
}

// SubOrderResponse represents a vendor's slice of an order
type SubOrderResponse struct {
	ID                    uuid.UUID       `json:"id"`
	VendorID              uuid.UUID       `json:"vendor_id"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Total                 decimal.Decimal `json:"total"`
	Status                string          `json:"status"`
	TrackingNumber        string          `json:"tracking_number"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date"`
	Items                 []OrderItemResponse `json:"items"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	UserID        uuid.UUID           `json:"user_id"`
	Items         []OrderItemResponse `json:"items"`
	SubOrders     []SubOrderResponse  `json:"sub_orders"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Shipping      decimal.Decimal     `json:"shipping"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Status        string              `json:"status"`
	CancelledBy   *string             `json:"cancelled_by"`
	CancelledAt   *time.Time          `json:"cancelled_at"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderListResponse represents an order list item
type OrderListResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	ItemCount   int             `json:"item_count"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToOrderItemResponse converts a domain OrderItem
func ToOrderItemResponse(item ordering.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		VendorID:    item.VendorID,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Amount:      item.Amount(),
		Attributes:  item.Attributes,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ToOrderItemResponse(item)
	}

	subOrders := make([]SubOrderResponse, len(o.SubOrders))
	for i, sub := range o.SubOrders {
		subItems := o.ItemsForVendor(sub.VendorID)
		subItemResponses := make([]OrderItemResponse, len(subItems))
		for j, item := range subItems {
			subItemResponses[j] = ToOrderItemResponse(item)
		}
		subOrders[i] = SubOrderResponse{
			ID:                    sub.ID,
			VendorID:              sub.VendorID,
			Subtotal:              sub.Subtotal,
			Shipping:              sub.Shipping,
			Total:                 sub.Total,
			Status:                string(sub.Status),
			TrackingNumber:        sub.TrackingNumber,
			EstimatedDeliveryDate: sub.EstimatedDeliveryDate,
			Items:                 subItemResponses,
		}
	}

	var cancelledBy *string
	if o.CancelledBy != nil {
		actor := string(*o.CancelledBy)
		cancelledBy = &actor
	}

	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Items:         items,
		SubOrders:     subOrders,
		Subtotal:      o.Subtotal,
		Shipping:      o.Shipping,
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Status:        string(o.Status()),
		CancelledBy:   cancelledBy,
		CancelledAt:   o.CancelledAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderListResponse converts a domain Order to OrderListResponse
func ToOrderListResponse(o *ordering.Order) OrderListResponse {
	return OrderListResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		ItemCount:   o.ItemCount(),
		Total:       o.Total,
		Status:      string(o.Status()),
		CreatedAt:   o.CreatedAt,
	}
}

// ToOrderListResponses converts a slice of domain Orders
func ToOrderListResponses(orders []ordering.Order) []OrderListResponse {
	responses := make([]OrderListResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListResponse(&orders[i])
	}
	return responses
}
