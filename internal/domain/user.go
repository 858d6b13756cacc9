package domain

import "time"

// Role is the coarse authorization label assigned to every account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned to self-registered accounts.
const DefaultRole = RoleUser

// ParseRole maps a string onto the closed role enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Valid reports whether the role is a member of the enumeration.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
