package auth

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleJobSeeker Role = "job-seeker"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleRecruiter, RoleJobSeeker:
		return r, true
	default:
		return "", false
	}
}

func (r Role) Valid() bool { return r == RoleRecruiter || r == RoleJobSeeker }

// Identity is the caller decoded from a verified token.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// Require is the single role gate shared by middleware and use cases.
func (i Identity) Require(role Role) error {
	if i.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if i.Role != role {
		return ErrForbidden
	}
	return nil
}
