package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	ErrInvalidWorkspaceDoc = errors.New("Invalid workspace file")
	ErrWorkspaceNotFound   = errors.New("No saved workspace")
)

type IWorkspaceService interface {
	// Import validates and stores the uploaded document verbatim.
	Import(ctx context.Context, userId uuid.UUID, document []byte) error
	// Export returns the stored document byte for byte as imported.
	Export(ctx context.Context, userId uuid.UUID) ([]byte, error)
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory) IWorkspaceService {
	return &workspaceService{uowFactory: uowFactory}
}

// Import checks only that the payload is well-formed JSON. The document's
// internal layout belongs to the editor and may change between releases, so
// the server never interprets it.
func (s *workspaceService) Import(ctx context.Context, userId uuid.UUID, document []byte) error {
	if len(document) == 0 || !json.Valid(document) {
		return ErrInvalidWorkspaceDoc
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.WorkspaceRepository().Upsert(ctx, &entity.Workspace{
		Id:        uuid.New(),
		UserId:    userId,
		Document:  document,
		UpdatedAt: time.Now(),
	})
}

func (s *workspaceService) Export(ctx context.Context, userId uuid.UUID) ([]byte, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	workspace, err := uow.WorkspaceRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}
	return workspace.Document, nil
}
