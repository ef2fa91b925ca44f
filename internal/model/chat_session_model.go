package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     *string   `gorm:"type:text"` // nil until the first user message sets it
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
