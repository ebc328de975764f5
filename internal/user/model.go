package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// Role determines what a user may do with bookings. Owners book rooms for
// their own pets; staff and admins additionally drive booking lifecycle
// transitions and manage the room catalog.
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// IsValid returns true if the role is a recognized value.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsStaff returns true for roles allowed to confirm bookings and see all data.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Role         Role
	DisplayName  *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
