package models

import "time"

// StatusCheck is an unauthenticated liveness ping left by a client.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
