package ordering

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/domain/notification"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderNumberAttempts bounds the retry loop on order number collisions
const orderNumberAttempts = 5

// Mailer sends transactional email. Implementations must not panic; send
// failures never fail the business operation that triggered them.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo        ordering.OrderRepository
	cartRepo         ordering.CartRepository
	productRepo      catalog.ProductRepository
	userRepo         identity.Repository
	notificationRepo notification.Repository
	mailer           Mailer
	logger           *zap.Logger
	shippingFee      decimal.Decimal
	adminEmails      []string

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	cartRepo ordering.CartRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.Repository,
	notificationRepo notification.Repository,
	mailer Mailer,
	logger *zap.Logger,
	shippingFee decimal.Decimal,
	adminEmails []string,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		cartRepo:         cartRepo,
		productRepo:      productRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		logger:           logger,
		shippingFee:      shippingFee,
		adminEmails:      adminEmails,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Checkout converts the user's cart into an order. Every line is validated
// against live product data and its price snapshotted at this moment. After
// the order is saved, side effects (cart clearing, stock decrement,
// notifications, email fan-out) run isolated from each other: a failure is
// logged but never rolls back the placed order.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	order, err := ordering.NewOrder(userID, s.nextOrderNumber(), ordering.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	for _, line := range cart.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "A cart item is no longer available")
			}
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", fmt.Sprintf("%s is no longer available", product.Name))
		}
		if !product.HasStockFor(line.Quantity) {
			available := 0
			if product.Stock != nil {
				available = *product.Stock
			}
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Not enough stock for %s: %d available, %d requested", product.Name, available, line.Quantity))
		}

		if err := order.AddItem(product.ID, product.Name, product.VendorID, line.Quantity, product.EffectivePrice(), line.Attributes); err != nil {
			return nil, err
		}
	}

	if err := order.Finalize(s.shippingFee); err != nil {
		return nil, err
	}

	if err := s.saveWithRetry(ctx, order); err != nil {
		return nil, err
	}

	s.afterCheckout(ctx, order, cart)

	response := ToOrderResponse(order)
	return &response, nil
}

// nextOrderNumber generates a candidate order number
func (s *OrderService) nextOrderNumber() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return ordering.GenerateOrderNumber(time.Now(), s.rng)
}

// saveWithRetry persists the order, regenerating the order number on a
// uniqueness collision up to orderNumberAttempts times.
func (s *OrderService) saveWithRetry(ctx context.Context, order *ordering.Order) error {
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		err = s.orderRepo.Save(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return err
		}
		order.OrderNumber = s.nextOrderNumber()
	}
	return err
}

// afterCheckout runs the post-order side effects. Each effect is isolated:
// an error is logged and the rest still run.
func (s *OrderService) afterCheckout(ctx context.Context, order *ordering.Order, cart *ordering.Cart) {
	log := s.logger.With(zap.String("order_number", order.OrderNumber))

	cart.Clear()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		log.Error("Failed to clear cart after checkout", zap.Error(err))
	}

	for _, item := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			log.Error("Failed to decrement stock",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}

	if n, err := notification.New(order.UserID, notification.KindOrderPlaced,
		fmt.Sprintf("Order %s placed", order.OrderNumber),
		fmt.Sprintf("Your order %s for NPR %s has been placed.", order.OrderNumber, order.Total.StringFixed(2))); err == nil {
		if err := s.notificationRepo.Save(ctx, n); err != nil {
			log.Error("Failed to save order notification", zap.Error(err))
		}
	}

	for _, adminEmail := range s.adminEmails {
		s.sendMail(ctx, log, adminEmail,
			fmt.Sprintf("New order %s", order.OrderNumber),
			fmt.Sprintf("Order %s placed for NPR %s with %d items.", order.OrderNumber, order.Total.StringFixed(2), order.ItemCount()))
	}

	if customer, err := s.userRepo.FindByID(ctx, order.UserID); err != nil {
		log.Error("Failed to load customer for order email", zap.Error(err))
	} else {
		s.sendMail(ctx, log, customer.Email,
			fmt.Sprintf("Your order %s", order.OrderNumber),
			fmt.Sprintf("Thank you %s, your order %s for NPR %s has been placed.", customer.Name, order.OrderNumber, order.Total.StringFixed(2)))
	}

	for _, vendorID := range order.Vendors {
		vendor, err := s.userRepo.FindByID(ctx, vendorID)
		if err != nil {
			log.Error("Failed to load vendor for order email",
				zap.String("vendor_id", vendorID.String()), zap.Error(err))
			continue
		}
		sub := order.SubOrderForVendor(vendorID)
		if sub == nil {
			continue
		}
		s.sendMail(ctx, log, vendor.Email,
			fmt.Sprintf("New order %s", order.OrderNumber),
			fmt.Sprintf("You received an order worth NPR %s with %d items.", sub.Subtotal.StringFixed(2), len(order.ItemsForVendor(vendorID))))
	}
}

func (s *OrderService) sendMail(ctx context.Context, log *zap.Logger, to, subject, body string) {
	if to == "" {
		return
	}
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		log.Error("Failed to send order email", zap.String("to", to), zap.Error(err))
	}
}

// GetByID retrieves an order. A non-nil requesterID restricts access to the
// order's owner.
func (s *OrderService) GetByID(ctx context.Context, requesterID *uuid.UUID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if requesterID != nil && order.UserID != *requesterID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, requesterID *uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if requesterID != nil && order.UserID != *requesterID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListByUser retrieves a customer's order history
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderListResponse], error) {
	domainFilter := buildOrderFilter(filter)
	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToOrderListResponses(orders), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// ListByVendor retrieves the orders containing a vendor's sub-order
func (s *OrderService) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter OrderListFilter) ([]OrderListResponse, error) {
	orders, err := s.orderRepo.FindByVendor(ctx, vendorID, buildOrderFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToOrderListResponses(orders), nil
}

// List retrieves all orders (admin)
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderListResponse], error) {
	domainFilter := buildOrderFilter(filter)
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToOrderListResponses(orders), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdateSubOrderStatus updates a vendor's sub-order. An admin may act on
// behalf of any vendor by passing that vendor's ID.
func (s *OrderService) UpdateSubOrderStatus(ctx context.Context, vendorID, orderID uuid.UUID, req UpdateSubOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateSubOrderStatus(vendorID, ordering.OrderStatus(req.Status), req.TrackingNumber, req.EstimatedDeliveryDate); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, order, ordering.OrderStatus(req.Status))

	response := ToOrderResponse(order)
	return &response, nil
}

// notifyStatusChange informs the customer of a sub-order status change.
// Failures are logged, never returned.
func (s *OrderService) notifyStatusChange(ctx context.Context, order *ordering.Order, status ordering.OrderStatus) {
	log := s.logger.With(zap.String("order_number", order.OrderNumber))

	if n, err := notification.New(order.UserID, notification.KindOrderStatusChanged,
		fmt.Sprintf("Order %s update", order.OrderNumber),
		fmt.Sprintf("Part of your order %s is now %s.", order.OrderNumber, status)); err == nil {
		if err := s.notificationRepo.Save(ctx, n); err != nil {
			log.Error("Failed to save status notification", zap.Error(err))
		}
	}

	if customer, err := s.userRepo.FindByID(ctx, order.UserID); err != nil {
		log.Error("Failed to load customer for status email", zap.Error(err))
	} else {
		s.sendMail(ctx, log, customer.Email,
			fmt.Sprintf("Order %s update", order.OrderNumber),
			fmt.Sprintf("Part of your order %s is now %s.", order.OrderNumber, status))
	}
}

// Cancel cancels an order and restores stock for every line. A non-nil
// requesterID restricts cancellation to the order's owner; a nil one cancels
// as admin.
func (s *OrderService) Cancel(ctx context.Context, requesterID *uuid.UUID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	actor := ordering.CancelledByAdmin
	if requesterID != nil {
		if order.UserID != *requesterID {
			return nil, shared.ErrNotFound
		}
		actor = ordering.CancelledByCustomer
	}

	if err := order.Cancel(actor); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	log := s.logger.With(zap.String("order_number", order.OrderNumber))
	for _, item := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Error("Failed to restore stock on cancel",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
	s.notifyStatusChange(ctx, order, ordering.OrderStatusCancelled)

	response := ToOrderResponse(order)
	return &response, nil
}

// MarkPaid records payment for an order (admin)
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

func buildOrderFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["order_status"] = filter.Status
	}
	return domainFilter
}
