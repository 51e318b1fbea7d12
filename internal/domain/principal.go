package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStudent   Role = "student"
	RoleAnonymous Role = "anonymous"
)

// Principal is the identity resolved once per request and threaded through
// the services. Student holds the audience-matching snapshot when the
// principal is a student; it is nil when the session points at a student
// record that no longer exists.
type Principal struct {
	Role    Role
	UserID  uuid.UUID
	Student *Student
}

func Anonymous() Principal {
	return Principal{Role: RoleAnonymous}
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsAnonymous() bool {
	return p.Role == RoleAnonymous
}

// RecipientID returns the role-prefixed identifier used as the join key
// between subscriptions, read receipts and audience membership. Empty for
// anonymous principals.
func (p Principal) RecipientID() string {
	switch p.Role {
	case RoleAdmin:
		return AdminRecipient(p.UserID)
	case RoleStudent:
		return StudentRecipient(p.UserID)
	default:
		return ""
	}
}

const StudentRecipientPrefix = "student:"

func AdminRecipient(id uuid.UUID) string {
	return fmt.Sprintf("admin:%s", id)
}

func StudentRecipient(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", StudentRecipientPrefix, id)
}
