package service

import (
	"context"
	"errors"
	"time"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/pkg/logger"
	"devonaut-be/pkg/events"
	pktNats "devonaut-be/pkg/nats"
	"devonaut-be/pkg/sandbox"

	"github.com/google/uuid"
)

var ErrDangerousCode = errors.New("Potentially dangerous code detected")

type ICodeService interface {
	RunCode(ctx context.Context, userId uuid.UUID, req *dto.RunCodeRequest) (*dto.RunCodeResponse, error)
}

type codeService struct {
	runner         sandbox.Runner
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewCodeService(runner sandbox.Runner, eventPublisher *pktNats.Publisher, log logger.ILogger) ICodeService {
	return &codeService{
		runner:         runner,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// RunCode screens the submission, then executes it in a throwaway
// container. A runtime failure comes back inside the response body, not as
// an error; only infrastructure problems error out.
func (s *codeService) RunCode(ctx context.Context, userId uuid.UUID, req *dto.RunCodeRequest) (*dto.RunCodeResponse, error) {
	if !sandbox.Validate(req.Code) {
		s.logger.Warn("CodeService", "Submission rejected by safety screen", map[string]interface{}{
			"user_id": userId,
		})
		return nil, ErrDangerousCode
	}

	started := time.Now()
	result, err := s.runner.Run(ctx, userId.String(), req.Code)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeCodeExecuted,
			Data: map[string]interface{}{
				"user_id":     userId,
				"duration_ms": time.Since(started).Milliseconds(),
				"had_error":   result.Error != "",
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return &dto.RunCodeResponse{
		Output: result.Output,
		Error:  result.Error,
	}, nil
}
