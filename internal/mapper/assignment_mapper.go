package mapper

import (
	"encoding/json"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/model"

	"gorm.io/datatypes"
)

type AssignmentMapper struct{}

func NewAssignmentMapper() *AssignmentMapper {
	return &AssignmentMapper{}
}

func (m *AssignmentMapper) ToEntity(a *model.Assignment) *entity.Assignment {
	if a == nil {
		return nil
	}
	var problems []entity.Problem
	if len(a.Problems) > 0 {
		// Malformed rows degrade to an empty problem list rather than failing the read.
		_ = json.Unmarshal(a.Problems, &problems)
	}
	return &entity.Assignment{
		Id:          a.Id,
		TeacherId:   a.TeacherId,
		Title:       a.Title,
		Description: a.Description,
		Section:     a.Section,
		Problems:    problems,
		DueAt:       a.DueAt,
		Published:   a.Published,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *AssignmentMapper) ToModel(a *entity.Assignment) *model.Assignment {
	if a == nil {
		return nil
	}
	problems, _ := json.Marshal(a.Problems)
	return &model.Assignment{
		Id:          a.Id,
		TeacherId:   a.TeacherId,
		Title:       a.Title,
		Description: a.Description,
		Section:     a.Section,
		Problems:    datatypes.JSON(problems),
		DueAt:       a.DueAt,
		Published:   a.Published,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *AssignmentMapper) ToEntities(assignments []*model.Assignment) []*entity.Assignment {
	entities := make([]*entity.Assignment, len(assignments))
	for i, a := range assignments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
