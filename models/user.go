package models

import "time"

// User roles. HR staff count as admins; everyone else is an employee.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User represents a directory entry for an HR staff member or an employee.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"` // "admin" or "employee"
	Department   string    `bson:"department,omitempty" json:"department,omitempty"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the user belongs to HR staff.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Principal is the resolved identity of a request, set by the auth middleware
// and passed explicitly into every service call.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the principal carries the HR/staff role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
