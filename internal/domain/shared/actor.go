package shared

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the marketplace role carried by an authenticated caller
type Role string

const (
	RoleTenant Role = "TENANT"
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleTenant, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a role case-insensitively
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", NewInvalidInput("Unknown role: " + s)
	}
	return r, nil
}

// Actor is the authenticated user performing an operation
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// NewActor creates an actor
func NewActor(userID uuid.UUID, role Role) Actor {
	return Actor{UserID: userID, Role: role}
}

// IsAdmin reports whether the actor has the ADMIN role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Is reports whether the actor is the given user
func (a Actor) Is(userID uuid.UUID) bool {
	return userID != uuid.Nil && a.UserID == userID
}

// SystemActor is used by background processes such as the lifecycle sweeper
var SystemActor = Actor{UserID: uuid.Nil, Role: RoleAdmin}
