package model

import "time"

// Roles a credential may carry. Closed set; anything else is rejected at
// signup.
const (
	RoleClient = "CLIENT"
	RoleVendor = "VENDOR"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	JWT string `json:"jwt"`
}

// AuthUser is the request-scoped identity established by the identity
// middleware.
type AuthUser struct {
	Email string
	Role  string
}

type User struct {
	ID           int64
	Name         string
	Surname      string
	Email        string
	PasswordHash string
	Role         string
	Img          *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
