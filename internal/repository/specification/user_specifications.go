package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUsername filters users by the unique login name.
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// ByRole filters users by access role ("student", "teacher").
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// OwnedBy scopes rows carrying a user_id column.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByAssignment scopes rows carrying an assignment_id column.
type ByAssignment struct {
	AssignmentID uuid.UUID
}

func (s ByAssignment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("assignment_id = ?", s.AssignmentID)
}

// ByTeacher scopes assignments to their author.
type ByTeacher struct {
	TeacherID uuid.UUID
}

func (s ByTeacher) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("teacher_id = ?", s.TeacherID)
}
