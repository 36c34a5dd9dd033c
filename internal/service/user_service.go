package service

import (
	"context"
	"errors"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/repository/specification"
	"devonaut-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("User not found")

type IUserService interface {
	Whoami(ctx context.Context, userId uuid.UUID) (*dto.WhoamiResponse, error)
	ListStudents(ctx context.Context) ([]dto.StudentRow, error)
	UpdateSkillScore(ctx context.Context, userId uuid.UUID, score int) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

// Whoami resolves the verified token identity to the current account row.
// The client's re-check hook compares this against its cached role and
// prefers this answer on drift.
func (s *userService) Whoami(ctx context.Context, userId uuid.UUID) (*dto.WhoamiResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.WhoamiResponse{
		Username: user.Username,
		UserId:   user.Id.String(),
		Role:     string(user.Role),
	}, nil
}

// ListStudents backs the teacher dashboard roster.
func (s *userService) ListStudents(ctx context.Context) ([]dto.StudentRow, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx,
		specification.ByRole{Role: "student"},
		specification.OrderBy{Field: "username"},
	)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StudentRow, 0, len(users))
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = u.Username
		}
		rows = append(rows, dto.StudentRow{
			Id:      u.Id.String(),
			Name:    name,
			Section: u.Section,
			Score:   u.SkillLevelScore,
			Email:   u.Email,
		})
	}
	return rows, nil
}

// UpdateSkillScore records the onboarding placement result.
func (s *userService) UpdateSkillScore(ctx context.Context, userId uuid.UUID, score int) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.SkillLevelScore = score
	return uow.UserRepository().Update(ctx, user)
}
