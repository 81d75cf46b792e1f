// Package auth provides registration, login, token issuance and verification
// for the todo API. This file defines the request/response shapes of the
// /auth endpoints.
package auth

import "time"

// RegisterRequest documents the registration payload. The actual decoding
// goes through the validation package, which checks the raw body field by
// field; this struct exists for the API documentation.
type RegisterRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// LoginRequest documents the login payload.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// UserResponse is the outward projection of a user. It deliberately omits
// the password hash.
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"user@example.com"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
