package notificationRepo

import (
	"context"

	"orgflow/models"
)

// NotificationRepository persists in-app notifications. Rows are append-only
// apart from the isRead and status flags; there is no delete.
type NotificationRepository interface {
	Create(ctx context.Context, n models.Notification) (string, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	MarkActioned(ctx context.Context, id, userID string) error
	MarkActionedByReference(ctx context.Context, referenceType, referenceID string) error
}
