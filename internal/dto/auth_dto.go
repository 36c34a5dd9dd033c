package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message     string  `json:"message"`
	AccessToken string  `json:"token"`
	User        UserDTO `json:"user"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher"`
	Section  string `json:"section"`
}

type RegisterResponse struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type UserDTO struct {
	Id       uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Name     string    `json:"name,omitempty"`
	Role     string    `json:"role"`
	Section  string    `json:"section,omitempty"`
}

// DetailResponse is the legacy error shape. The web client matches on the
// "detail" field for login, chat and run-code failures, so those endpoints
// keep it instead of the standard envelope.
type DetailResponse struct {
	Detail string `json:"detail"`
}
