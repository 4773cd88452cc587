package model

// WebSocket message types
const (
	WSMessageTypeJob   = "job"
	WSMessageTypeError = "error"
	WSMessageTypePing  = "ping"
	WSMessageTypePong  = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// WSJobMessage carries a job status change for a song
type WSJobMessage struct {
	Type   string    `json:"type"`
	SongID string    `json:"songId"`
	JobID  string    `json:"jobId"`
	Kind   JobKind   `json:"kind"`
	Status JobStatus `json:"status"`
	Error  *string   `json:"error,omitempty"`
}

// WSErrorMessage represents an error
type WSErrorMessage struct {
	Type   string  `json:"type"`
	SongID string  `json:"songId"`
	Error  WSError `json:"error"`
}

// WSError represents error details
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
