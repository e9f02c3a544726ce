package models

import "time"

// Participant is one invited survey taker. The token is the primary key
// and doubles as the capability embedded in the survey link; it never
// changes after creation.
type Participant struct {
	Token     string    `json:"token"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
