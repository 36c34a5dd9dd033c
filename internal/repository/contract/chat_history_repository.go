package contract

import (
	"context"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/repository/specification"
)

type ChatHistoryRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
}

type KeystrokeRepository interface {
	Create(ctx context.Context, keystroke *entity.Keystroke) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Keystroke, error)
}
