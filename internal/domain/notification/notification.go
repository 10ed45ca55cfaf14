package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
)

// Kind identifies what event produced a notification
type Kind string

const (
	KindOrderPlaced        Kind = "order_placed"
	KindOrderStatusChanged Kind = "order_status_changed"
	KindReviewApproved     Kind = "review_approved"
)

// Notification is an in-app message addressed to one user
type Notification struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind   Kind      `gorm:"type:varchar(40);not null"`
	Title  string    `gorm:"type:varchar(200);not null"`
	Body   string    `gorm:"type:text"`
	Read   bool      `gorm:"not null;default:false"`
	ReadAt *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// New creates an unread notification
func New(userID uuid.UUID, kind Kind, title, body string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Body:       body,
	}, nil
}

// MarkRead marks the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}

// Repository defines persistence operations for notifications
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
