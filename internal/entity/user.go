package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`

	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
	Status   string `json:"status"`

	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Avatar      *string `json:"avatar"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RegisterRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
}

// UpdateUserRequest carries the mutable profile fields. Which of them an
// actor may actually set depends on their role, see access.go.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Status      *string `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
