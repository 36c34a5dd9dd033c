package service

import (
	"context"
	"errors"
	"time"

	"devonaut-be/internal/config"
	"devonaut-be/internal/dto"
	"devonaut-be/internal/entity"
	"devonaut-be/internal/repository/specification"
	"devonaut-be/internal/repository/unitofwork"
	"devonaut-be/pkg/events"
	pktNats "devonaut-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors the controller maps onto the legacy {detail} bodies.
var (
	ErrInvalidCredentials = errors.New("Incorrect username or password")
	ErrUsernameTaken      = errors.New("Username already registered")
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	cfg            *config.Config
	eventPublisher *pktNats.Publisher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, eventPublisher *pktNats.Publisher) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		cfg:            cfg,
		eventPublisher: eventPublisher,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.UserRoleStudent
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashStr,
		Name:         req.Name,
		Role:         role,
		Section:      req.Section,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserRegistered,
			Data: map[string]interface{}{
				"user_id":  user.Id,
				"username": user.Username,
				"role":     string(user.Role),
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return &dto.RegisterResponse{
		Id:       user.Id,
		Username: user.Username,
		Role:     string(user.Role),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	signedToken, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserLogin,
			Data: map[string]interface{}{
				"user_id":  user.Id,
				"username": user.Username,
				"role":     string(user.Role),
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return &dto.LoginResponse{
		Message:     "Login successful",
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Username: user.Username,
			Name:     user.Name,
			Role:     string(user.Role),
			Section:  user.Section,
		},
	}, nil
}

// signToken mints the session JWT. The role claim rides along so the edge
// guard can route without a backend call; authorization proper re-verifies
// the signature in JwtMiddleware.
func (s *authService) signToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Duration(s.cfg.Auth.AccessTokenExpiry) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JwtSecret))
}
