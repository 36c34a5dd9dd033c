package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTeacher UserRole = "teacher"
)

type User struct {
	Id           uuid.UUID
	Username     string
	Email        string
	PasswordHash *string
	Name         string
	Role         UserRole
	Section      string

	// Skill placement from onboarding
	SkillLevelScore int

	// AI question quota
	QuestionsUsed int

	CreatedAt time.Time
	UpdatedAt time.Time
}
