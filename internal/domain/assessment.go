package domain

import (
	"time"

	"github.com/google/uuid"
)

type Assessment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BatchID   uuid.UUID `json:"batch_id" db:"batch_id"`
	Title     string    `json:"title" db:"title"`
	Subject   string    `json:"subject" db:"subject"`
	Date      time.Time `json:"date" db:"date"`
	MaxMarks  int       `json:"max_marks" db:"max_marks"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateAssessmentInput struct {
	BatchID  string  `json:"batchId"`
	Title    string  `json:"title"`
	Subject  string  `json:"subject"`
	Date     string  `json:"date"`
	MaxMarks float64 `json:"maxMarks"`
}
