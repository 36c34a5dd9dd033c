package nats

import (
	"testing"

	"devonaut-be/pkg/events"
)

// Handlers switch on the bare events.Type* constants, so whatever subject a
// message arrived on must map back to the bare code.
func TestEventTypeSurvivesTheWire(t *testing.T) {
	for _, eventType := range []string{
		events.TypeUserLogin,
		events.TypeUserRegistered,
		events.TypeAssignmentCreated,
		events.TypeCodeExecuted,
	} {
		subject := subjectFor(eventType)
		if subject != "events."+eventType {
			t.Errorf("subjectFor(%q) = %q", eventType, subject)
		}

		event := eventFromSubject(subject, map[string]interface{}{"k": "v"})
		if got := event.EventType(); got != eventType {
			t.Errorf("eventFromSubject(%q).EventType() = %q, want %q", subject, got, eventType)
		}
		if event.Payload()["k"] != "v" {
			t.Errorf("payload lost through eventFromSubject(%q)", subject)
		}
	}
}

func TestEventFromSubjectWithoutPrefix(t *testing.T) {
	event := eventFromSubject(events.TypeUserLogin, nil)
	if got := event.EventType(); got != events.TypeUserLogin {
		t.Errorf("EventType() = %q, want %q", got, events.TypeUserLogin)
	}
}
