package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Model  string `json:"model,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ChatHistoryItem struct {
	Id        uuid.UUID              `json:"id"`
	Prompt    string                 `json:"prompt"`
	Response  string                 `json:"response"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type RestoreChatRequest struct {
	Id        uuid.UUID              `json:"id" validate:"required"`
	Prompt    string                 `json:"prompt" validate:"required"`
	Response  string                 `json:"response"`
	Timestamp string                 `json:"timestamp" validate:"required"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// StatusResponse is the structured payload for delete/restore
// endpoints; expected failures land here, not in an HTTP error status.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// VectorCleanupMessage is the payload published on the vector cleanup
// topic after a relational delete.
type VectorCleanupMessage struct {
	Ids []uuid.UUID `json:"ids"`
}
