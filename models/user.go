package models

import "time"

// User is a local viewing profile. Authentication lives with the external
// identity provider; this record only keys watch history and preferences.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
