package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	RegistrationNo string     `json:"registration_no" db:"registration_no"`
	FullName       string     `json:"full_name" db:"full_name"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	BatchID        *uuid.UUID `json:"batch_id,omitempty" db:"batch_id"`
	Grade          *string    `json:"grade,omitempty" db:"grade"`
	PhotoURL       *string    `json:"photo_url,omitempty" db:"photo_url"`
	IsArchived     bool       `json:"is_archived" db:"is_archived"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

type Batch struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type StudentLoginInput struct {
	RegistrationNo string `json:"registrationNo"`
	Phone          string `json:"phone"`
}

var phoneNoiseRe = regexp.MustCompile(`[\s\-\(\)\+]`)

// NormalizePhone strips spaces, dashes, parentheses and plus signs so phone
// numbers entered in different formats compare equal.
func NormalizePhone(phone string) string {
	return phoneNoiseRe.ReplaceAllString(phone, "")
}
