package service

import (
	"context"
	"errors"
	"time"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/entity"
	"devonaut-be/internal/repository/specification"
	"devonaut-be/internal/repository/unitofwork"
	"devonaut-be/pkg/events"
	pktNats "devonaut-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrAssignmentNotFound = errors.New("Assignment not found")

type IAssignmentService interface {
	Create(ctx context.Context, teacherId uuid.UUID, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetById(ctx context.Context, id uuid.UUID) (*dto.AssignmentResponse, error)
	// List returns newest-first summaries, published ones only unless
	// includeUnpublished is set (teacher views). teacherId, when set,
	// narrows the listing to that author's assignments.
	List(ctx context.Context, includeUnpublished bool, teacherId *uuid.UUID) ([]dto.AssignmentSummary, error)
}

type assignmentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewAssignmentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IAssignmentService {
	return &assignmentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *assignmentService) Create(ctx context.Context, teacherId uuid.UUID, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment := &entity.Assignment{
		Id:          uuid.New(),
		TeacherId:   teacherId,
		Title:       req.Title,
		Description: req.Description,
		Section:     req.Section,
		Problems:    problemsFromDTO(req.Problems),
		DueAt:       req.DueAt,
		Published:   req.Published,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AssignmentRepository().Create(ctx, assignment); err != nil {
		return nil, err
	}

	if assignment.Published && s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeAssignmentCreated,
			Data: map[string]interface{}{
				"assignment_id": assignment.Id,
				"title":         assignment.Title,
				"section":       assignment.Section,
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return toAssignmentResponse(assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	assignment, err := uow.AssignmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}

	wasPublished := assignment.Published

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.Section != nil {
		assignment.Section = *req.Section
	}
	if req.Problems != nil {
		assignment.Problems = problemsFromDTO(req.Problems)
	}
	if req.DueAt != nil {
		assignment.DueAt = req.DueAt
	}
	if req.Published != nil {
		assignment.Published = *req.Published
	}
	assignment.UpdatedAt = time.Now()

	if err := uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return nil, err
	}

	// Publishing an existing draft notifies the class the same way a
	// published create does.
	if !wasPublished && assignment.Published && s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeAssignmentCreated,
			Data: map[string]interface{}{
				"assignment_id": assignment.Id,
				"title":         assignment.Title,
				"section":       assignment.Section,
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return toAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	assignment, err := uow.AssignmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if assignment == nil {
		return ErrAssignmentNotFound
	}
	return uow.AssignmentRepository().Delete(ctx, id)
}

func (s *assignmentService) GetById(ctx context.Context, id uuid.UUID) (*dto.AssignmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	assignment, err := uow.AssignmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	return toAssignmentResponse(assignment), nil
}

func (s *assignmentService) List(ctx context.Context, includeUnpublished bool, teacherId *uuid.UUID) ([]dto.AssignmentSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if !includeUnpublished {
		specs = append(specs, specification.Filter("published", true))
	}
	if teacherId != nil {
		specs = append(specs, specification.ByTeacher{TeacherID: *teacherId})
	}

	assignments, err := uow.AssignmentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.AssignmentSummary, 0, len(assignments))
	for _, a := range assignments {
		summaries = append(summaries, dto.AssignmentSummary{
			Id:           a.Id,
			Title:        a.Title,
			Section:      a.Section,
			ProblemCount: len(a.Problems),
			DueAt:        a.DueAt,
			Published:    a.Published,
		})
	}
	return summaries, nil
}

func problemsFromDTO(dtos []dto.ProblemDTO) []entity.Problem {
	problems := make([]entity.Problem, 0, len(dtos))
	for i, p := range dtos {
		problems = append(problems, entity.Problem{
			Index:          i,
			Type:           entity.ProblemType(p.Type),
			Title:          p.Title,
			Description:    p.Description,
			StarterCode:    p.StarterCode,
			ExpectedOutput: p.ExpectedOutput,
			Blanks:         p.Blanks,
		})
	}
	return problems
}

func toAssignmentResponse(a *entity.Assignment) *dto.AssignmentResponse {
	problems := make([]dto.ProblemDTO, 0, len(a.Problems))
	for _, p := range a.Problems {
		problems = append(problems, dto.ProblemDTO{
			Index:          p.Index,
			Type:           string(p.Type),
			Title:          p.Title,
			Description:    p.Description,
			StarterCode:    p.StarterCode,
			ExpectedOutput: p.ExpectedOutput,
			Blanks:         p.Blanks,
		})
	}
	return &dto.AssignmentResponse{
		Id:          a.Id,
		TeacherId:   a.TeacherId,
		Title:       a.Title,
		Description: a.Description,
		Section:     a.Section,
		Problems:    problems,
		DueAt:       a.DueAt,
		Published:   a.Published,
		CreatedAt:   a.CreatedAt,
	}
}
