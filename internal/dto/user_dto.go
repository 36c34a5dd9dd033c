package dto

// WhoamiResponse mirrors the original GET /users/me payload.
type WhoamiResponse struct {
	Username string `json:"username"`
	UserId   string `json:"user_id"`
	Role     string `json:"role"`
}

// StudentRow is one line of the teacher dashboard roster.
type StudentRow struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section"`
	Score   int    `json:"score"`
	Email   string `json:"email"`
}
