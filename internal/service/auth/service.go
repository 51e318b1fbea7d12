package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"math-academy/internal/domain"
	"math-academy/internal/repository"
	"math-academy/internal/service/session"
)

// ErrInvalidCredentials is deliberately generic: login failures never reveal
// whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	AdminLogin(ctx context.Context, input domain.AdminLoginInput) (*domain.User, error)
	// StudentLogin returns the student and a signed session token.
	StudentLogin(ctx context.Context, input domain.StudentLoginInput) (*domain.Student, string, error)
}

type service struct {
	userRepo    repository.UserRepository
	studentRepo repository.StudentRepository
	sessions    *session.Manager
}

func NewService(userRepo repository.UserRepository, studentRepo repository.StudentRepository, sessions *session.Manager) Service {
	return &service{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		sessions:    sessions,
	}
}

func (s *service) AdminLogin(ctx context.Context, input domain.AdminLoginInput) (*domain.User, error) {
	if input.Phone == "" || input.PIN == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != domain.RoleUserAdmin {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(input.PIN)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *service) StudentLogin(ctx context.Context, input domain.StudentLoginInput) (*domain.Student, string, error) {
	registrationNo := strings.TrimSpace(input.RegistrationNo)
	if registrationNo == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, "", ErrInvalidCredentials
	}

	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return nil, "", err
	}
	if student == nil || student.Phone == nil {
		return nil, "", ErrInvalidCredentials
	}

	if domain.NormalizePhone(input.Phone) != domain.NormalizePhone(*student.Phone) {
		return nil, "", ErrInvalidCredentials
	}

	return student, s.sessions.CreateToken(student.ID), nil
}
