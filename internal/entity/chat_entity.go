package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one persisted line of an AI-tutor conversation.
type ChatMessage struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	AssignmentId *uuid.UUID
	Role         ChatRole
	Content      string
	CreatedAt    time.Time
}
