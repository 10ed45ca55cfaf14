package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/notification"
	"github.com/sdkart/backend/internal/domain/shared"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationListResponse is a user's notification page with unread count
type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int64                  `json:"unread_count"`
}

// ToNotificationResponse converts a domain Notification
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationService handles a user's in-app notifications
type NotificationService struct {
	notificationRepo notification.Repository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notification.Repository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List retrieves a user's notifications with the unread count
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*NotificationListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"

	notifications, err := s.notificationRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		items[i] = ToNotificationResponse(&notifications[i])
	}
	return &NotificationListResponse{Items: items, UnreadCount: unread}, nil
}

// MarkRead marks one notification as read. Only the addressee may read it.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return shared.ErrNotFound
	}
	n.MarkRead()
	return s.notificationRepo.Save(ctx, n)
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
