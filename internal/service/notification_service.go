package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devonaut-be/internal/model"
	"devonaut-be/internal/pkg/logger"
	"devonaut-be/internal/repository/unitofwork"
	"devonaut-be/pkg/events"
	pktNats "devonaut-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Implemented by the websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeAssignmentCreated:
		return s.announceAssignment(event)
	case events.TypeUserLogin:
		return s.noticeLogin(ctx, event)
	default:
		// Quota resets, code runs and the rest stay invisible for now.
		return nil
	}
}

// announceAssignment broadcasts a class-wide notice. Broadcasts are push
// only; fanning a row out to every student inbox does not scale.
func (s *NotificationService) announceAssignment(event events.Event) error {
	payload := event.Payload()
	title, _ := payload["title"].(string)
	if title == "" {
		return nil
	}

	meta, _ := json.Marshal(payload)
	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    uuid.Nil,
		TypeCode:  events.TypeAssignmentCreated,
		Title:     "New assignment",
		Message:   fmt.Sprintf("A new assignment is available: %s", title),
		Metadata:  datatypes.JSON(meta),
		CreatedAt: time.Now(),
	}
	if s.delivery != nil {
		s.delivery.Broadcast(notif)
	}
	return nil
}

// noticeLogin stores a per-user notice so a second device shows up in the
// user's inbox.
func (s *NotificationService) noticeLogin(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	userIdStr, _ := payload["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil
	}

	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    userId,
		TypeCode:  events.TypeUserLogin,
		Title:     "New sign-in",
		Message:   "Your account signed in on a new session.",
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		s.logger.Warn("NotificationService", "Failed to store notification", map[string]interface{}{"error": err.Error()})
		return err
	}
	if s.delivery != nil {
		s.delivery.Send(userId, notif)
	}
	return nil
}

// Inbox queries for the notification endpoints.

func (s *NotificationService) GetNotifications(ctx context.Context, userId uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().FindByUser(ctx, userId, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().CountUnread(ctx, userId)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, userId)
}
