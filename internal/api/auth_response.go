package api

import "time"

// AuthResponse is returned by register and login.
// swagger:model api.AuthResponse
type AuthResponse struct {
	Token     string       `json:"token" example:"eyJhbGciOi..."`
	ExpiresAt *time.Time   `json:"expires_at,omitempty" example:"2026-05-09T15:04:05Z"`
	User      UserResponse `json:"user"`
}
