package service

import (
	"context"
	"encoding/json"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/entity"
	"devonaut-be/internal/pkg/logger"
	"devonaut-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the keystroke topic and persists each snapshot.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishKeystrokeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal snapshot", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	userId, err := uuid.Parse(payload.UserId)
	if err != nil {
		cs.logger.Error("ConsumerService", "Bad user id in snapshot", map[string]interface{}{"user_id": payload.UserId})
		msg.Ack()
		return
	}

	keystroke := &entity.Keystroke{
		Id:           uuid.New(),
		UserId:       userId,
		ProblemIndex: payload.ProblemIndex,
		Code:         payload.Code,
		Timestamp:    payload.Timestamp,
	}
	if payload.AssignmentId != "" {
		if assignmentId, err := uuid.Parse(payload.AssignmentId); err == nil {
			keystroke.AssignmentId = &assignmentId
		}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KeystrokeRepository().Create(ctx, keystroke); err != nil {
		cs.logger.Error("ConsumerService", "Failed to persist snapshot", map[string]interface{}{
			"user_id": payload.UserId,
			"error":   err.Error(),
		})
		// Nack for retriable errors
		msg.Nack()
		return
	}

	msg.Ack()
}
