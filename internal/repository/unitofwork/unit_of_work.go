package unitofwork

import (
	"context"

	"devonaut-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AssignmentRepository() contract.AssignmentRepository
	ChatHistoryRepository() contract.ChatHistoryRepository
	KeystrokeRepository() contract.KeystrokeRepository
	WorkspaceRepository() contract.WorkspaceRepository
	NotificationRepository() contract.NotificationRepository
}
