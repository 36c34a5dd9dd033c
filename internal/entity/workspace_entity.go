package entity

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the single JSON document a user can export to a file and
// import back. The content is opaque: it is validated as JSON and nothing
// more, and a round-trip must preserve it byte for byte.
type Workspace struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Document  []byte
	UpdatedAt time.Time
}
