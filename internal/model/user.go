package model

import "time"

// Role names accepted in the users.role column and in token claims.
const (
	RoleAdmin   = "admin"
	RoleRanger  = "ranger"
	RoleVisitor = "visitor"
)

// ValidRole reports whether r is one of the fixed roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleRanger, RoleVisitor:
		return true
	}
	return false
}

// User represents an account row in the `users` table.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hash; never serialized.
//	FirstName    – given name.
//	LastName     – family name.
//	Role         – one of admin, ranger, visitor.
//	Phone        – optional contact number.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last profile update.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of a User returned by the API. It never
// carries the password hash.
type PublicUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public strips the credential fields from u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
