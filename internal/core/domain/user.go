package domain

import (
	"errors"
	"regexp"
	"time"
)

// RoleAdmin is the privileged role. Admins bypass the menu-visibility check
// in the route guard and may manage users and menus.
const RoleAdmin = 1

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrRoleNotFound       = errors.New("role not found")
	ErrForbidden          = errors.New("access forbidden")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. Presence and
// shape only; deliverability is not checked.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Role is a named permission group referenced by users and menus.
type Role struct {
	ID   int    `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

func (r Role) EntityID() int { return r.ID }

// User models a dashboard operator account.
type User struct {
	ID           int       `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	RoleID       int       `json:"roleId" bson:"role_id"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

func (u User) EntityID() int { return u.ID }
