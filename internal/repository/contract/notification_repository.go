package contract

import (
	"context"

	"devonaut-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository works on the model directly; notifications have no
// richer domain shape than their stored row.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}
