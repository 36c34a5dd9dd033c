package implementation

import (
	"context"
	"errors"
	"time"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/model"
	"devonaut-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkspaceRepositoryImpl struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) contract.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{db: db}
}

func (r *WorkspaceRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.Workspace, error) {
	var ws model.Workspace
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&ws).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.Workspace{
		Id:        ws.Id,
		UserId:    ws.UserId,
		Document:  []byte(ws.Document),
		UpdatedAt: ws.UpdatedAt,
	}, nil
}

func (r *WorkspaceRepositoryImpl) Upsert(ctx context.Context, workspace *entity.Workspace) error {
	ws := model.Workspace{
		Id:        workspace.Id,
		UserId:    workspace.UserId,
		Document:  datatypes.JSON(workspace.Document),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&ws).Error
}
