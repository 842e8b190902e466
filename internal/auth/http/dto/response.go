package dto

import "time"

// AuthResponse contains the issued bearer credential and its expiration.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
