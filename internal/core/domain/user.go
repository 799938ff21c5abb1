package domain

import (
	"errors"
	"time"
)

// Role classifies what a user may do with tasks.
type Role string

const (
	// RoleIndividual owns its own tasks and sees tasks assigned to it.
	RoleIndividual Role = "individual"
	// RoleEmployee never owns tasks; it only works tasks it is assigned to.
	RoleEmployee Role = "employee"
	// RoleAdmin creates tasks and is the only role allowed to assign them.
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string received from the outside.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleIndividual, RoleEmployee, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRoleMismatch = errors.New("user role mismatch")
var ErrInvalidRole = errors.New("invalid role")

// User models a registered account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Ref returns the displayable identity of the user, safe to embed in task
// responses.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserRef is the public identity of a user (no credentials, no role).
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Principal is the authenticated identity making a request, reconstructed per
// request from verified token claims. It is never persisted.
type Principal struct {
	ID   string
	Role Role
}
