package mapper

import (
	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// History Mappers

func (m *ChatMapper) HistoryToEntity(h *model.ChatHistory) *entity.ChatHistory {
	if h == nil {
		return nil
	}
	return &entity.ChatHistory{
		Id:        h.Id,
		Prompt:    h.Prompt,
		Response:  h.Response,
		Timestamp: h.Timestamp,
		Metadata:  map[string]interface{}(h.Metadata),
	}
}

func (m *ChatMapper) HistoryToModel(h *entity.ChatHistory) *model.ChatHistory {
	if h == nil {
		return nil
	}
	return &model.ChatHistory{
		Id:        h.Id,
		Prompt:    h.Prompt,
		Response:  h.Response,
		Timestamp: h.Timestamp,
		Metadata:  datatypes.JSONMap(h.Metadata),
	}
}

// Session Mappers

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Sender:    msg.Sender,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Sender:    msg.Sender,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	}
}
