package contract

import (
	"context"

	"devonaut-be/internal/entity"

	"github.com/google/uuid"
)

type WorkspaceRepository interface {
	// FindByUser returns nil when the user has no stored document yet.
	FindByUser(ctx context.Context, userId uuid.UUID) (*entity.Workspace, error)

	// Upsert replaces the user's document in one statement.
	Upsert(ctx context.Context, workspace *entity.Workspace) error
}
