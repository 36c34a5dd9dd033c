package contract

import (
	"context"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	Update(ctx context.Context, assignment *entity.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Assignment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assignment, error)
}
