package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email           string    `gorm:"type:varchar(255);index"`
	PasswordHash    *string   `gorm:"type:varchar(255)"`
	Name            string    `gorm:"type:varchar(255)"`
	Role            string    `gorm:"type:varchar(20);not null;default:'student'"`
	Section         string    `gorm:"type:varchar(50)"`
	SkillLevelScore int       `gorm:"default:0"`
	QuestionsUsed   int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
