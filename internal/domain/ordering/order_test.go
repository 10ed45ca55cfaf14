package ordering

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	number := GenerateOrderNumber(now, rng)
	assert.Regexp(t, regexp.MustCompile(`^MB20260315\d{6}$`), number)
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), "MB20260315000001", PaymentMethodPayLater)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPending, order.Status())
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "MB20260315000001", "cheque")
		assert.Error(t, err)
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "", PaymentMethodPayNow)
		assert.Error(t, err)
	})
}

func TestOrderFinalize(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()

	order, err := NewOrder(uuid.New(), "MB20260315000001", PaymentMethodPayLater)
	require.NoError(t, err)

	require.NoError(t, order.AddItem(uuid.New(), "Scaler", vendorA, 2, decimal.NewFromInt(500), nil))
	require.NoError(t, order.AddItem(uuid.New(), "Mirror", vendorB, 3, decimal.NewFromInt(100), nil))
	require.NoError(t, order.Finalize(decimal.NewFromInt(100)))

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(1300)))
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(100)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(1400)))

	require.Len(t, order.SubOrders, 2)
	subA := order.SubOrderForVendor(vendorA)
	require.NotNil(t, subA)
	assert.True(t, subA.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, OrderStatusPending, subA.Status)

	subB := order.SubOrderForVendor(vendorB)
	require.NotNil(t, subB)
	assert.True(t, subB.Subtotal.Equal(decimal.NewFromInt(300)))

	t.Run("same vendor gets a single sub-order", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), "MB20260315000002", PaymentMethodPayLater)
		require.NoError(t, err)
		require.NoError(t, order.AddItem(uuid.New(), "A", vendorA, 1, decimal.NewFromInt(10), nil))
		require.NoError(t, order.AddItem(uuid.New(), "B", vendorA, 1, decimal.NewFromInt(20), nil))
		require.NoError(t, order.Finalize(decimal.Zero))
		assert.Len(t, order.SubOrders, 1)
	})

	t.Run("empty order cannot be finalized", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), "MB20260315000003", PaymentMethodPayLater)
		require.NoError(t, err)
		assert.Error(t, order.Finalize(decimal.Zero))
	})
}

func TestDeriveOrderStatus(t *testing.T) {
	cases := []struct {
		name     string
		statuses []OrderStatus
		want     OrderStatus
	}{
		{"empty input", []OrderStatus{}, ""},
		{"all cancelled", []OrderStatus{OrderStatusCancelled, OrderStatusCancelled}, OrderStatusCancelled},
		{"all delivered", []OrderStatus{OrderStatusDelivered, OrderStatusDelivered}, OrderStatusDelivered},
		{"delivered and cancelled is shipped", []OrderStatus{OrderStatusDelivered, OrderStatusCancelled}, OrderStatusShipped},
		{"any shipped wins over processing", []OrderStatus{OrderStatusShipped, OrderStatusProcessing}, OrderStatusShipped},
		{"any processing wins over pending", []OrderStatus{OrderStatusProcessing, OrderStatusPending}, OrderStatusProcessing},
		{"all pending", []OrderStatus{OrderStatusPending, OrderStatusPending}, OrderStatusPending},
		{"pending and cancelled", []OrderStatus{OrderStatusPending, OrderStatusCancelled}, OrderStatusPending},
		{"single delivered", []OrderStatus{OrderStatusDelivered}, OrderStatusDelivered},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveOrderStatus(tc.statuses))
		})
	}
}

func TestUpdateSubOrderStatus(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()

	newFinalizedOrder := func(t *testing.T) *Order {
		t.Helper()
		order, err := NewOrder(uuid.New(), "MB20260315000004", PaymentMethodPayLater)
		require.NoError(t, err)
		require.NoError(t, order.AddItem(uuid.New(), "A", vendorA, 1, decimal.NewFromInt(100), nil))
		require.NoError(t, order.AddItem(uuid.New(), "B", vendorB, 1, decimal.NewFromInt(200), nil))
		require.NoError(t, order.Finalize(decimal.NewFromInt(100)))
		return order
	}

	t.Run("projects parent status from sub-orders", func(t *testing.T) {
		order := newFinalizedOrder(t)
		require.NoError(t, order.UpdateSubOrderStatus(vendorA, OrderStatusShipped, "TRK123", nil))
		assert.Equal(t, OrderStatusShipped, order.Status())
		assert.Equal(t, OrderStatusShipped, order.OrderStatus)
		assert.Equal(t, "TRK123", order.SubOrderForVendor(vendorA).TrackingNumber)
		assert.Equal(t, OrderStatusPending, order.SubOrderForVendor(vendorB).Status)
	})

	t.Run("rejects unknown vendor", func(t *testing.T) {
		order := newFinalizedOrder(t)
		assert.Error(t, order.UpdateSubOrderStatus(uuid.New(), OrderStatusShipped, "", nil))
	})

	t.Run("rejects update after terminal state", func(t *testing.T) {
		order := newFinalizedOrder(t)
		require.NoError(t, order.UpdateSubOrderStatus(vendorA, OrderStatusDelivered, "", nil))
		assert.Error(t, order.UpdateSubOrderStatus(vendorA, OrderStatusShipped, "", nil))
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		order := newFinalizedOrder(t)
		assert.Error(t, order.UpdateSubOrderStatus(vendorA, "lost", "", nil))
	})
}

func TestOrderCancel(t *testing.T) {
	vendorA := uuid.New()

	newFinalizedOrder := func(t *testing.T) *Order {
		t.Helper()
		order, err := NewOrder(uuid.New(), "MB20260315000005", PaymentMethodPayLater)
		require.NoError(t, err)
		require.NoError(t, order.AddItem(uuid.New(), "A", vendorA, 3, decimal.NewFromInt(100), nil))
		require.NoError(t, order.Finalize(decimal.NewFromInt(100)))
		return order
	}

	t.Run("cancels order and all sub-orders", func(t *testing.T) {
		order := newFinalizedOrder(t)
		require.NoError(t, order.Cancel(CancelledByCustomer))
		assert.Equal(t, OrderStatusCancelled, order.Status())
		require.NotNil(t, order.CancelledBy)
		assert.Equal(t, CancelledByCustomer, *order.CancelledBy)
		assert.NotNil(t, order.CancelledAt)
		for _, sub := range order.SubOrders {
			assert.Equal(t, OrderStatusCancelled, sub.Status)
		}
	})

	t.Run("rejects cancel after delivery", func(t *testing.T) {
		order := newFinalizedOrder(t)
		require.NoError(t, order.UpdateSubOrderStatus(vendorA, OrderStatusDelivered, "", nil))
		assert.False(t, order.CanCancel())
		assert.Error(t, order.Cancel(CancelledByAdmin))
	})

	t.Run("rejects double cancel", func(t *testing.T) {
		order := newFinalizedOrder(t)
		require.NoError(t, order.Cancel(CancelledByAdmin))
		assert.Error(t, order.Cancel(CancelledByAdmin))
	})
}

func TestOrderMarkPaid(t *testing.T) {
	order, err := NewOrder(uuid.New(), "MB20260315000006", PaymentMethodPayNow)
	require.NoError(t, err)

	require.NoError(t, order.MarkPaid())
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.Error(t, order.MarkPaid())
}
