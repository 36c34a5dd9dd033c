package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Assignment struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeacherId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Section     string         `gorm:"type:varchar(50);index"`
	Problems    datatypes.JSON `gorm:"type:jsonb"`
	DueAt       *time.Time
	Published   bool      `gorm:"default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Assignment) TableName() string {
	return "assignments"
}
