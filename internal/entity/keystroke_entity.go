package entity

import (
	"time"

	"github.com/google/uuid"
)

// Keystroke is a point-in-time snapshot of a student's editor buffer,
// captured while they work on an exercise.
type Keystroke struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	AssignmentId *uuid.UUID
	ProblemIndex int
	Code         string
	Timestamp    time.Time
}
