package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatHistory struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Prompt    string            `gorm:"type:text;not null"`
	Response  string            `gorm:"type:text"`
	Timestamp time.Time         `gorm:"index"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
