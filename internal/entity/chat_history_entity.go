package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatHistory struct {
	Id        uuid.UUID
	Prompt    string
	Response  string
	Timestamp time.Time
	Metadata  map[string]interface{}
}
