package domain

import (
	"time"

	"github.com/google/uuid"
)

// User identifies a task owner. Accounts are provisioned by the
// authentication subsystem; this service only reads them when joining
// owner information onto tasks.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
