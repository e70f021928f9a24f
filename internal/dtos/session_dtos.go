package dtos

import "time"

/*
SessionResponse is the anonymous session minted by POST /api/v1/session.
The client sends Token back as Authorization: Bearer on every other call.
*/
type SessionResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
