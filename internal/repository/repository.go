package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Student      StudentRepository
	Batch        BatchRepository
	Notice       NoticeRepository
	Subscription SubscriptionRepository
	Assessment   AssessmentRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Student:      NewStudentRepository(db),
		Batch:        NewBatchRepository(db),
		Notice:       NewNoticeRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Assessment:   NewAssessmentRepository(db),
	}
}
