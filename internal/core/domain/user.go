package domain

import "time"

// Role is the closed set of roles the authorization engine understands.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleEngineer Role = "engineer"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleEngineer:
		return Role(s), true
	}
	return "", false
}

// SelfRegisterable reports whether the role may be chosen at registration.
// Admin accounts are provisioned out of band, never self-registered.
func (r Role) SelfRegisterable() bool {
	return r == RoleUser || r == RoleEngineer
}

// User models an account owned by the identity service. PasswordHash is
// never serialized to clients.
type User struct {
	ID           string    `json:"userId" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Name         string    `json:"name" bson:"name"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// Clone returns an independent copy so stores never hand out shared state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
