package dto

import (
	"time"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest self-registers a patient account. Role is not accepted
// from the caller; self-service accounts are always patients.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	NIK      string `json:"nik" validate:"required,nik"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=20"`
	Age      int    `json:"age" validate:"required,gte=0,lte=150"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SessionStateResponse is returned by the session watch endpoint. Status is
// "authenticated" or "unauthenticated"; identity fields are only present in
// the authenticated case.
type SessionStateResponse struct {
	Status string      `json:"status"`
	UserID *uuid.UUID  `json:"user_id,omitempty"`
	Role   entity.Role `json:"role,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      entity.Role `json:"role"`
	NIK       string      `json:"nik,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Age       int         `json:"age,omitempty"`
	TeamID    *int64      `json:"team_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
