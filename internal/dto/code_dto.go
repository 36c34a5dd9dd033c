package dto

import "time"

type RunCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type RunCodeResponse struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

type KeystrokeRequest struct {
	Code         string     `json:"code" validate:"required"`
	AssignmentId string     `json:"assignment_id"`
	ProblemIndex int        `json:"problem_index"`
	Timestamp    *time.Time `json:"timestamp"`
}

// PublishKeystrokeMessage is the bus payload between the snapshot endpoint
// and the persisting consumer.
type PublishKeystrokeMessage struct {
	UserId       string    `json:"user_id"`
	AssignmentId string    `json:"assignment_id,omitempty"`
	ProblemIndex int       `json:"problem_index"`
	Code         string    `json:"code"`
	Timestamp    time.Time `json:"timestamp"`
}

type KeystrokeEntry struct {
	Id           string    `json:"id"`
	AssignmentId string    `json:"assignment_id,omitempty"`
	ProblemIndex int       `json:"problem_index"`
	Code         string    `json:"code"`
	Timestamp    time.Time `json:"timestamp"`
}
