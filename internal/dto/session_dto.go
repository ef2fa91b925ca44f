package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionListItem struct {
	Id           uuid.UUID `json:"id"`
	Title        *string   `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int64     `json:"message_count"`
}

type CreateSessionRequest struct {
	Title *string `json:"title"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type AddMessageRequest struct {
	Sender string `json:"sender" validate:"required,oneof=user assistant"`
	Text   string `json:"text" validate:"required"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type RestoredSession struct {
	Id        uuid.UUID `json:"id" validate:"required"`
	Title     *string   `json:"title"`
	CreatedAt string    `json:"created_at"`
}

type RestoredMessage struct {
	Id        uuid.UUID `json:"id" validate:"required"`
	Sender    string    `json:"sender" validate:"required,oneof=user assistant"`
	Text      string    `json:"text" validate:"required"`
	Timestamp string    `json:"timestamp"`
}

type RestoreSessionRequest struct {
	Session        RestoredSession   `json:"session" validate:"required"`
	Messages       []RestoredMessage `json:"messages" validate:"dive"`
	RestoreVectors bool              `json:"restore_vectors"`
}

type RestoreSessionResponse struct {
	Success           bool       `json:"success"`
	RestoredSessionId *uuid.UUID `json:"restored_session_id,omitempty"`
	Error             string     `json:"error,omitempty"`
}
