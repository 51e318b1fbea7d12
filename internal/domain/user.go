package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account. The system currently runs with a single implicit
// admin identity: the first user with role ADMIN is the admin for read
// receipts and push targeting.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Phone     string    `json:"phone" db:"phone"`
	Email     *string   `json:"email,omitempty" db:"email"`
	PinHash   string    `json:"-" db:"pin_hash"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type UserRole string

const (
	RoleUserAdmin UserRole = "ADMIN"
	RoleUserStaff UserRole = "STAFF"
)

type AdminLoginInput struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}
