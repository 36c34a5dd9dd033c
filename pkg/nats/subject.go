package nats

import (
	"strings"
	"time"

	"devonaut-be/pkg/events"
)

// subjectPrefix namespaces every event on the EVENTS stream. On the wire a
// type code rides as "events.<TYPE>"; handlers always see the bare code, so
// they compare against the events.Type* constants directly.
const subjectPrefix = "events."

func subjectFor(eventType string) string {
	return subjectPrefix + eventType
}

// eventFromSubject rebuilds the bus event for handlers, mapping the subject
// back to the bare type code.
func eventFromSubject(subject string, payload map[string]interface{}) events.BaseEvent {
	return events.BaseEvent{
		Type:       strings.TrimPrefix(subject, subjectPrefix),
		Data:       payload,
		OccurredAt: time.Now(),
	}
}
