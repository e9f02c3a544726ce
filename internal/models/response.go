package models

import (
	"encoding/json"
	"time"
)

// Response is a participant's stored survey submission. ResponseData is the
// raw JSON document exactly as the participant sent it; nothing validates
// its shape against the survey definition.
type Response struct {
	Token        string    `json:"token"`
	ResponseData string    `json:"response_data"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// ResponseExport is one row of the admin responses export: the response
// joined with its participant. Label is nil when the participant row no
// longer exists (responses outlive participants only if the cascade is
// bypassed, but the export handles it anyway).
type ResponseExport struct {
	Token       string          `json:"token"`
	Label       *string         `json:"label"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Answers     json.RawMessage `json:"answers"`
}
