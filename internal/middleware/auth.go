package middleware

import (
	"github.com/gofiber/fiber/v2"

	"math-academy/internal/domain"
	"math-academy/internal/repository"
	"math-academy/internal/service/session"
)

const (
	PrincipalContextKey = "principal"

	AdminSessionCookie   = "admin_session"
	StudentSessionCookie = "student_session"
)

// ResolvePrincipal resolves the request's credentials to a Principal exactly
// once and stashes it in the request context. An invalid or expired session
// degrades to anonymous; handlers decide whether anonymous access is allowed.
func ResolvePrincipal(users repository.UserRepository, students repository.StudentRepository, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := domain.Anonymous()

		if c.Cookies(AdminSessionCookie) == "1" {
			admin, err := users.FindAdminIdentity(c.Context())
			if err == nil && admin != nil {
				principal = domain.Principal{Role: domain.RoleAdmin, UserID: admin.ID}
			}
		} else if token := c.Cookies(StudentSessionCookie); token != "" {
			if studentID, ok := sessions.VerifyToken(token); ok {
				// Student may have been deleted since the session was issued;
				// keep the id so handlers can answer NotFound instead of
				// Unauthorized.
				student, err := students.GetByID(c.Context(), studentID)
				if err == nil {
					principal = domain.Principal{Role: domain.RoleStudent, UserID: studentID, Student: student}
				}
			}
		}

		c.Locals(PrincipalContextKey, principal)
		return c.Next()
	}
}

func GetPrincipal(c *fiber.Ctx) domain.Principal {
	principal, ok := c.Locals(PrincipalContextKey).(domain.Principal)
	if !ok {
		return domain.Anonymous()
	}
	return principal
}
