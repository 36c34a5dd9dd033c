package service

import (
	"context"
	"testing"

	"devonaut-be/internal/model"
	"devonaut-be/pkg/events"

	"github.com/google/uuid"
)

type recordingNotificationRepo struct {
	created []model.Notification
}

func (r *recordingNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	r.created = append(r.created, *notification)
	return nil
}

func (r *recordingNotificationRepo) FindByUser(context.Context, uuid.UUID, int, int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (r *recordingNotificationRepo) CountUnread(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *recordingNotificationRepo) MarkAsRead(context.Context, uuid.UUID) error { return nil }

func (r *recordingNotificationRepo) MarkAllAsRead(context.Context, uuid.UUID) error { return nil }

type recordingDelivery struct {
	sent      []model.Notification
	broadcast []model.Notification
}

func (d *recordingDelivery) Send(_ uuid.UUID, notification model.Notification) {
	d.sent = append(d.sent, notification)
}

func (d *recordingDelivery) Broadcast(notification model.Notification) {
	d.broadcast = append(d.broadcast, notification)
}

type silentLogger struct{}

func (silentLogger) Debug(string, string, map[string]interface{}) {}
func (silentLogger) Info(string, string, map[string]interface{})  {}
func (silentLogger) Warn(string, string, map[string]interface{})  {}
func (silentLogger) Error(string, string, map[string]interface{}) {}
func (silentLogger) Sync() error                                  { return nil }

func newNotificationServiceForTest() (*NotificationService, *recordingNotificationRepo, *recordingDelivery) {
	repo := &recordingNotificationRepo{}
	delivery := &recordingDelivery{}
	svc := NewNotificationService(
		&fakeUowFactory{uow: &fakeUnitOfWork{notifications: repo}},
		nil,
		delivery,
		silentLogger{},
	)
	return svc, repo, delivery
}

// Events arrive off the bus with the bare type code, so the handler's switch
// must route them. A miss here means broadcasts silently never fire.
func TestHandleEventBroadcastsAssignment(t *testing.T) {
	svc, repo, delivery := newNotificationServiceForTest()

	event := events.BaseEvent{
		Type: events.TypeAssignmentCreated,
		Data: map[string]interface{}{"title": "FizzBuzz", "assignment_id": uuid.New().String()},
	}
	if err := svc.handleEvent(context.Background(), event); err != nil {
		t.Fatalf("handleEvent: %v", err)
	}

	if len(delivery.broadcast) != 1 {
		t.Fatalf("got %d broadcasts, want 1", len(delivery.broadcast))
	}
	notif := delivery.broadcast[0]
	if notif.TypeCode != events.TypeAssignmentCreated {
		t.Errorf("TypeCode = %q, want %q", notif.TypeCode, events.TypeAssignmentCreated)
	}
	if notif.Message != "A new assignment is available: FizzBuzz" {
		t.Errorf("unexpected message %q", notif.Message)
	}
	if len(repo.created) != 0 {
		t.Errorf("broadcast stored %d rows, want none", len(repo.created))
	}
}

func TestHandleEventStoresLoginNotice(t *testing.T) {
	svc, repo, delivery := newNotificationServiceForTest()
	userId := uuid.New()

	event := events.BaseEvent{
		Type: events.TypeUserLogin,
		Data: map[string]interface{}{"user_id": userId.String()},
	}
	if err := svc.handleEvent(context.Background(), event); err != nil {
		t.Fatalf("handleEvent: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("got %d stored notices, want 1", len(repo.created))
	}
	if repo.created[0].UserID != userId {
		t.Errorf("stored UserID = %s, want %s", repo.created[0].UserID, userId)
	}
	if len(delivery.sent) != 1 || delivery.sent[0].UserID != userId {
		t.Fatalf("login notice not pushed to user %s", userId)
	}
}

func TestHandleEventIgnoresOtherTypes(t *testing.T) {
	svc, repo, delivery := newNotificationServiceForTest()

	for _, typeCode := range []string{events.TypeCodeExecuted, events.TypeUserRegistered, "UNKNOWN"} {
		event := events.BaseEvent{Type: typeCode, Data: map[string]interface{}{}}
		if err := svc.handleEvent(context.Background(), event); err != nil {
			t.Fatalf("handleEvent(%s): %v", typeCode, err)
		}
	}

	if len(repo.created) != 0 || len(delivery.sent) != 0 || len(delivery.broadcast) != 0 {
		t.Fatal("unhandled event types must not produce notifications")
	}
}

func TestHandleEventSkipsAssignmentWithoutTitle(t *testing.T) {
	svc, _, delivery := newNotificationServiceForTest()

	event := events.BaseEvent{Type: events.TypeAssignmentCreated, Data: map[string]interface{}{}}
	if err := svc.handleEvent(context.Background(), event); err != nil {
		t.Fatalf("handleEvent: %v", err)
	}
	if len(delivery.broadcast) != 0 {
		t.Fatal("assignment event without a title must not broadcast")
	}
}
