// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as User, Publisher, Article and
// Newsletter, along with their validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles. Every user has exactly one role,
// assigned at registration and never changed afterwards.
type Role string

const (
	// RoleReader can view published content and manage subscriptions.
	RoleReader Role = "reader"
	// RoleJournalist can author articles and newsletters.
	RoleJournalist Role = "journalist"
	// RoleEditor approves publisher content and manages publishers.
	RoleEditor Role = "editor"
)

// ParseRole converts a raw string into a Role.
// Returns a ValidationError for anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleReader, RoleJournalist, RoleEditor:
		return Role(s), nil
	}
	return "", &ValidationError{Field: "role", Message: fmt.Sprintf("invalid role %q", s)}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleJournalist, RoleEditor:
		return true
	}
	return false
}

// Group returns the permission group derived from the role.
// The group is a pure function of the role; there is no side table to
// keep in sync. ok is false for an unrecognized role.
func (r Role) Group() (string, bool) {
	switch r {
	case RoleReader:
		return "Reader", true
	case RoleJournalist:
		return "Journalist", true
	case RoleEditor:
		return "Editor", true
	}
	return "", false
}

// User represents a registered account in the system.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Groups       []string
	CreatedAt    time.Time
}

// AssignGroups replaces the user's group memberships with the single group
// derived from the role. An unrecognized role clears all memberships.
// The operation is idempotent: the result is always exactly one group,
// or zero for an invalid role.
func (u *User) AssignGroups() {
	u.Groups = u.Groups[:0]
	if group, ok := u.Role.Group(); ok {
		u.Groups = append(u.Groups, group)
	}
}
