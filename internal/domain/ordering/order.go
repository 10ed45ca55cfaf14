package ordering

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order or sub-order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod represents how the order is paid
type PaymentMethod string

const (
	PaymentMethodPayNow   PaymentMethod = "pay-now"
	PaymentMethodPayLater PaymentMethod = "pay-later"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodPayNow || m == PaymentMethodPayLater
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// CancelActor identifies who cancelled an order
type CancelActor string

const (
	CancelledByCustomer CancelActor = "customer"
	CancelledByAdmin    CancelActor = "admin"
)

// OrderItem is a purchased line. Price is an immutable snapshot of the
// product's effective price at order time and is never recomputed from
// live product data.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity    int       `gorm:"not null"`
	Price       decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	Attributes  map[string]string `gorm:"serializer:json"`
	CreatedAt   time.Time
}

// Amount returns the line total (price * quantity)
func (i OrderItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SubOrder is the per-vendor slice of a multi-vendor order. It carries its
// own status and tracking, independent of the sibling sub-orders; the parent
// order's status is a read-time projection over them.
type SubOrder struct {
	ID                    uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID   `gorm:"type:uuid;not null;index"`
	VendorID              uuid.UUID   `gorm:"type:uuid;not null;index"`
	Subtotal              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Shipping              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total                 decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status                OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	TrackingNumber        string      `gorm:"type:varchar(100)"`
	EstimatedDeliveryDate *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Order represents a placed order aggregate root
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string      `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	SubOrders     []SubOrder  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Vendors       []uuid.UUID `gorm:"serializer:json"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Shipping      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	// OrderStatus is the stored parent status. Orders with sub-orders read
	// their status through Status() instead; this field is the legacy
	// fallback for orders created before sub-orders existed.
	OrderStatus OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CancelledBy *CancelActor `gorm:"type:varchar(20)"`
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// GenerateOrderNumber builds an order number: "MB" + YYYYMMDD + 6 random
// digits. Uniqueness is enforced by the database; callers retry on collision.
func GenerateOrderNumber(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("MB%s%06d", now.Format("20060102"), rng.Intn(1000000))
}

// NewOrder creates an order shell; items and sub-orders are added by the
// checkout flow before the first save.
func NewOrder(userID uuid.UUID, orderNumber string, paymentMethod PaymentMethod) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be pay-now or pay-later")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Items:             make([]OrderItem, 0),
		SubOrders:         make([]SubOrder, 0),
		Vendors:           make([]uuid.UUID, 0),
		Subtotal:          decimal.Zero,
		Shipping:          decimal.Zero,
		Total:             decimal.Zero,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     PaymentStatusPending,
		OrderStatus:       OrderStatusPending,
	}, nil
}

// AddItem appends a snapshotted line and registers its vendor
func (o *Order) AddItem(productID uuid.UUID, productName string, vendorID uuid.UUID, quantity int, price decimal.Decimal, attributes map[string]string) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if attributes == nil {
		attributes = make(map[string]string)
	}

	o.Items = append(o.Items, OrderItem{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		VendorID:    vendorID,
		Quantity:    quantity,
		Price:       price,
		Attributes:  attributes,
		CreatedAt:   time.Now(),
	})

	if !o.hasVendor(vendorID) {
		o.Vendors = append(o.Vendors, vendorID)
	}
	return nil
}

// Finalize computes totals and builds one sub-order per distinct vendor.
// The flat shipping fee is charged once on the parent order.
func (o *Order) Finalize(shippingFee decimal.Decimal) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount())
	}
	o.Subtotal = subtotal
	o.Shipping = shippingFee
	o.Total = subtotal.Add(shippingFee)

	now := time.Now()
	o.SubOrders = o.SubOrders[:0]
	for _, vendorID := range o.Vendors {
		vendorSubtotal := decimal.Zero
		for _, item := range o.ItemsForVendor(vendorID) {
			vendorSubtotal = vendorSubtotal.Add(item.Amount())
		}
		o.SubOrders = append(o.SubOrders, SubOrder{
			ID:        uuid.New(),
			OrderID:   o.ID,
			VendorID:  vendorID,
			Subtotal:  vendorSubtotal,
			Shipping:  decimal.Zero,
			Total:     vendorSubtotal,
			Status:    OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return nil
}

// ItemsForVendor returns the lines belonging to a vendor
func (o *Order) ItemsForVendor(vendorID uuid.UUID) []OrderItem {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			items = append(items, item)
		}
	}
	return items
}

// SubOrderForVendor returns the vendor's sub-order, or nil
func (o *Order) SubOrderForVendor(vendorID uuid.UUID) *SubOrder {
	for idx := range o.SubOrders {
		if o.SubOrders[idx].VendorID == vendorID {
			return &o.SubOrders[idx]
		}
	}
	return nil
}

// Status resolves the order's effective status. Orders with sub-orders
// project it from the sub-order statuses; legacy orders without sub-orders
// read the stored parent status.
func (o *Order) Status() OrderStatus {
	if len(o.SubOrders) == 0 {
		return o.OrderStatus
	}
	statuses := make([]OrderStatus, len(o.SubOrders))
	for idx, sub := range o.SubOrders {
		statuses[idx] = sub.Status
	}
	return DeriveOrderStatus(statuses)
}

// DeriveOrderStatus projects an aggregate status from sub-order statuses.
// Precedence: all cancelled, all delivered, any shipped or delivered, any
// processing, otherwise pending. An empty input yields the empty status.
func DeriveOrderStatus(statuses []OrderStatus) OrderStatus {
	if len(statuses) == 0 {
		return ""
	}

	allCancelled := true
	allDelivered := true
	anyShippedOrDelivered := false
	anyProcessing := false
	for _, s := range statuses {
		if s != OrderStatusCancelled {
			allCancelled = false
		}
		if s != OrderStatusDelivered {
			allDelivered = false
		}
		if s == OrderStatusShipped || s == OrderStatusDelivered {
			anyShippedOrDelivered = true
		}
		if s == OrderStatusProcessing {
			anyProcessing = true
		}
	}

	switch {
	case allCancelled:
		return OrderStatusCancelled
	case allDelivered:
		return OrderStatusDelivered
	case anyShippedOrDelivered:
		return OrderStatusShipped
	case anyProcessing:
		return OrderStatusProcessing
	default:
		return OrderStatusPending
	}
}

// UpdateSubOrderStatus changes the status of the vendor's sub-order and
// mirrors the derived status onto the stored parent field.
func (o *Order) UpdateSubOrderStatus(vendorID uuid.UUID, status OrderStatus, trackingNumber string, eta *time.Time) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	sub := o.SubOrderForVendor(vendorID)
	if sub == nil {
		return shared.NewDomainError("SUB_ORDER_NOT_FOUND", "No sub-order for this vendor")
	}
	if sub.Status == OrderStatusDelivered || sub.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Sub-order is already in a terminal state")
	}

	sub.Status = status
	if trackingNumber != "" {
		sub.TrackingNumber = trackingNumber
	}
	if eta != nil {
		sub.EstimatedDeliveryDate = eta
	}
	sub.UpdatedAt = time.Now()

	o.OrderStatus = o.Status()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// CanCancel reports whether the order may still be cancelled
func (o *Order) CanCancel() bool {
	status := o.Status()
	return status != OrderStatusDelivered && status != OrderStatusCancelled
}

// Cancel cancels the order and all of its sub-orders. Cancellation is
// rejected once the order is delivered or already cancelled. The caller is
// responsible for restoring stock.
func (o *Order) Cancel(by CancelActor) error {
	if !o.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status()))
	}

	now := time.Now()
	o.OrderStatus = OrderStatusCancelled
	for idx := range o.SubOrders {
		o.SubOrders[idx].Status = OrderStatusCancelled
		o.SubOrders[idx].UpdatedAt = now
	}
	o.CancelledBy = &by
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// MarkPaid records a successful payment
func (o *Order) MarkPaid() error {
	if o.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	o.PaymentStatus = PaymentStatusPaid
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

func (o *Order) hasVendor(vendorID uuid.UUID) bool {
	for _, id := range o.Vendors {
		if id == vendorID {
			return true
		}
	}
	return false
}
