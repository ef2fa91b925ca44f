package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender    string    `gorm:"type:varchar(50);not null"` // "user" | "assistant"
	Text      string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
