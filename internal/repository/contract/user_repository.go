package contract

import (
	"context"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Question quota
	IncrementQuestionsUsed(ctx context.Context, userId uuid.UUID) error
	ResetQuestionsUsed(ctx context.Context, userId uuid.UUID) error
}
