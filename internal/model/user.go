package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCoordinator Role = "coordinator"
	RoleAdmin       Role = "admin"
	RoleOrganizer   Role = "organizer"
)

type User struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Email     string    `db:"email"      json:"email"`
	Password  string    `db:"password"   json:"-"` // never expose hash
	Role      Role      `db:"role"       json:"role"`
	IsActive  bool      `db:"is_active"  json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DTO for login/me responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// JWTClaims carried inside access/refresh tokens
type JWTClaims struct {
	UserID string
	Email  string
	Role   string
	Name   string
}
