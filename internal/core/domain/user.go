package domain

import "strings"

// Role is the permission level of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "kassierer"
)

// ParseRole returns the Role for s, or false when s names no known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAdmin, RoleCashier:
		return r, true
	}
	return "", false
}

// User models an actor that can authenticate against the API.
// Username and PasswordHash are either both set or both empty.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
	APIToken     string `json:"-"`
	Username     string `json:"username,omitempty"`
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// HasPassword reports whether the user can log in with username and password.
func (u User) HasPassword() bool { return u.Username != "" && u.PasswordHash != "" }

// NewUser carries the fields needed to create a user. An empty APIToken
// means the store generates one.
type NewUser struct {
	Name         string
	Role         Role
	Active       bool
	APIToken     string
	Username     string
	PasswordHash string
}

// UserPatch is a partial update; nil fields are left unchanged.
type UserPatch struct {
	Name   *string
	Role   *Role
	Active *bool
}
