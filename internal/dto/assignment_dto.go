package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProblemDTO struct {
	Index          int      `json:"index"`
	Type           string   `json:"type" validate:"required,oneof=code output explain fill"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	StarterCode    string   `json:"starter_code,omitempty"`
	ExpectedOutput string   `json:"expected_output,omitempty"`
	Blanks         []string `json:"blanks,omitempty"`
}

type CreateAssignmentRequest struct {
	Title       string       `json:"title" validate:"required,min=3,max=255"`
	Description string       `json:"description"`
	Section     string       `json:"section"`
	Problems    []ProblemDTO `json:"problems" validate:"required,min=1,dive"`
	DueAt       *time.Time   `json:"due_at"`
	Published   bool         `json:"published"`
}

type UpdateAssignmentRequest struct {
	Title       *string      `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string      `json:"description"`
	Section     *string      `json:"section"`
	Problems    []ProblemDTO `json:"problems" validate:"omitempty,min=1,dive"`
	DueAt       *time.Time   `json:"due_at"`
	Published   *bool        `json:"published"`
}

type AssignmentResponse struct {
	Id          uuid.UUID    `json:"id"`
	TeacherId   uuid.UUID    `json:"teacher_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Section     string       `json:"section,omitempty"`
	Problems    []ProblemDTO `json:"problems"`
	DueAt       *time.Time   `json:"due_at,omitempty"`
	Published   bool         `json:"published"`
	CreatedAt   time.Time    `json:"created_at"`
}

type AssignmentSummary struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Section      string     `json:"section,omitempty"`
	ProblemCount int        `json:"problem_count"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	Published    bool       `json:"published"`
}
