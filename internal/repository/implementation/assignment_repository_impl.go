package implementation

import (
	"context"
	"errors"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/mapper"
	"devonaut-be/internal/model"
	"devonaut-be/internal/repository/contract"
	"devonaut-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssignmentMapper
}

func NewAssignmentRepository(db *gorm.DB) contract.AssignmentRepository {
	return &AssignmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssignmentMapper(),
	}
}

func (r *AssignmentRepositoryImpl) Create(ctx context.Context, assignment *entity.Assignment) error {
	modelAssignment := r.mapper.ToModel(assignment)
	if err := r.db.WithContext(ctx).Create(modelAssignment).Error; err != nil {
		return err
	}
	*assignment = *r.mapper.ToEntity(modelAssignment)
	return nil
}

func (r *AssignmentRepositoryImpl) Update(ctx context.Context, assignment *entity.Assignment) error {
	modelAssignment := r.mapper.ToModel(assignment)
	if err := r.db.WithContext(ctx).Save(modelAssignment).Error; err != nil {
		return err
	}
	*assignment = *r.mapper.ToEntity(modelAssignment)
	return nil
}

func (r *AssignmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Assignment{}).Error
}

func (r *AssignmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Assignment, error) {
	var modelAssignment model.Assignment
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelAssignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelAssignment), nil
}

func (r *AssignmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assignment, error) {
	var modelAssignments []*model.Assignment
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelAssignments).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelAssignments), nil
}
