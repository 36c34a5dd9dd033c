package model

import (
	"time"

	"github.com/google/uuid"
)

type Keystroke struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;index:idx_keystrokes_user_ts,priority:1"`
	AssignmentId *uuid.UUID `gorm:"type:uuid;index"`
	ProblemIndex int        `gorm:"default:0"`
	Code         string     `gorm:"type:text;not null"`
	Timestamp    time.Time  `gorm:"not null;index:idx_keystrokes_user_ts,priority:2"`
}

func (Keystroke) TableName() string {
	return "code_keystrokes"
}
