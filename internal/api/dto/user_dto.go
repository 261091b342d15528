package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	ServiceNumber string `json:"service_number"`
	Password      string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
	SessionToken string    `json:"session_token"`
}

// UserRequest payload for creating or updating a user. Password is
// optional on update.
type UserRequest struct {
	Name          string `json:"name"`
	ServiceNumber string `json:"service_number"`
	Password      string `json:"password,omitempty"`
	Role          string `json:"role"`
	Section       string `json:"section"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	ServiceNumber string      `json:"service_number"`
	Role          domain.Role `json:"role"`
	Section       string      `json:"section"`
	CreatedAt     time.Time   `json:"created_at"`
}
