package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	UserId       string `json:"user_id" validate:"required"`
	Prompt       string `json:"prompt" validate:"required"`
	AssignmentId string `json:"assignment_id"`
}

type RemainingQuestionsResponse struct {
	QuestionsRemaining int `json:"questions_remaining"`
	MaxQuestions       int `json:"max_questions"`
}

type ResetQuestionsRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type ChatHistoryMessage struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistoryEntry struct {
	UserId   uuid.UUID            `json:"user_id"`
	Username string               `json:"username"`
	Messages []ChatHistoryMessage `json:"messages"`
}

type ChatHistoryResponse struct {
	Histories []ChatHistoryEntry `json:"histories"`
}
