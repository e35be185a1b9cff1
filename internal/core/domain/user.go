package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("invalid user")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Role is a fixed grant a user may hold.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// ParseRoles keeps the known role names from raw input, dropping
// duplicates and unknown strings.
func ParseRoles(raw []string) []Role {
	seen := make(map[Role]struct{}, len(raw))
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		role := Role(r)
		if role != RoleAdmin && role != RoleModerator {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}

// HasRole reports membership of role in a role set, as carried by a
// user record or a verified credential.
func HasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// User models a registered account. PasswordHash never serializes into
// any read response.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Mail         string    `json:"mail" bson:"mail"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Roles        []Role    `json:"roles" bson:"roles"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
