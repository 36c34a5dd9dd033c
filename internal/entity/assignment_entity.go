package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProblemType string

const (
	ProblemTypeCode    ProblemType = "code"
	ProblemTypeOutput  ProblemType = "output"
	ProblemTypeExplain ProblemType = "explain"
	ProblemTypeFill    ProblemType = "fill"
)

// Problem is one exercise inside an assignment.
type Problem struct {
	Index          int
	Type           ProblemType
	Title          string
	Description    string
	StarterCode    string
	ExpectedOutput string
	Blanks         []string
}

type Assignment struct {
	Id          uuid.UUID
	TeacherId   uuid.UUID
	Title       string
	Description string
	Section     string
	Problems    []Problem
	DueAt       *time.Time
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
