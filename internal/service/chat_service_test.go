package service

import (
	"context"
	"testing"
	"time"

	"chat-vector-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(t *testing.T, vectorRepo *fakeVectorRepo, publisher *fakePublisher) IChatService {
	t.Helper()
	return NewChatService(
		newTestFactory(t),
		vectorRepo,
		&fakeEmbedder{},
		&fakeLLM{response: "Hallo!"},
		publisher,
		noopLogger{},
	)
}

func TestSendChatPersistsAndIndexes(t *testing.T) {
	vectorRepo := newFakeVectorRepo()
	svc := newChatService(t, vectorRepo, &fakePublisher{})

	resp, err := svc.SendChat(context.Background(), &dto.ChatRequest{Prompt: "Wie geht es dir?"})
	require.NoError(t, err)
	assert.Equal(t, "Hallo!", resp.Response)

	chats, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "Wie geht es dir?", chats[0].Prompt)
	assert.Equal(t, "Hallo!", chats[0].Response)

	assert.Len(t, vectorRepo.entries, 1)
	for _, entry := range vectorRepo.entries {
		assert.Equal(t, chats[0].Id, entry.Id)
		assert.Equal(t, "Wie geht es dir?", entry.Document)
		assert.Nil(t, entry.SessionId)
	}
}

func TestSendChatSurvivesVectorStoreFailure(t *testing.T) {
	vectorRepo := newFakeVectorRepo()
	vectorRepo.failAdd = true
	svc := newChatService(t, vectorRepo, &fakePublisher{})

	resp, err := svc.SendChat(context.Background(), &dto.ChatRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hallo!", resp.Response)

	// The relational record exists even though indexing failed.
	chats, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Empty(t, vectorRepo.entries)
}

func TestGetAllChatsNewestFirst(t *testing.T) {
	svc := newChatService(t, newFakeVectorRepo(), &fakePublisher{})

	for _, prompt := range []string{"erste", "zweite", "dritte"} {
		_, err := svc.SendChat(context.Background(), &dto.ChatRequest{Prompt: prompt})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	chats, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 3)
	assert.Equal(t, "dritte", chats[0].Prompt)
	assert.Equal(t, "erste", chats[2].Prompt)
}

func TestDeleteChatPublishesCleanup(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newChatService(t, newFakeVectorRepo(), publisher)

	_, err := svc.SendChat(context.Background(), &dto.ChatRequest{Prompt: "weg damit"})
	require.NoError(t, err)
	chats, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)

	status, err := svc.DeleteChat(context.Background(), chats[0].Id)
	require.NoError(t, err)
	assert.True(t, status.Success)
	assert.Len(t, publisher.published(), 1)

	remaining, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteChatMissing(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newChatService(t, newFakeVectorRepo(), publisher)

	status, err := svc.DeleteChat(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, status.Success)
	assert.Equal(t, "Chat not found", status.Error)
	assert.Empty(t, publisher.published())
}

func TestRestoreChat(t *testing.T) {
	vectorRepo := newFakeVectorRepo()
	svc := newChatService(t, vectorRepo, &fakePublisher{})

	id := uuid.New()
	status, err := svc.RestoreChat(context.Background(), &dto.RestoreChatRequest{
		Id:        id,
		Prompt:    "wiederhergestellt",
		Response:  "ok",
		Timestamp: "2026-01-15T10:30:00Z",
	})
	require.NoError(t, err)
	assert.True(t, status.Success)

	chats, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, id, chats[0].Id)
	assert.Len(t, vectorRepo.entries, 1)
}

func TestRestoreChatDuplicateId(t *testing.T) {
	svc := newChatService(t, newFakeVectorRepo(), &fakePublisher{})

	req := &dto.RestoreChatRequest{
		Id:        uuid.New(),
		Prompt:    "original",
		Timestamp: "2026-01-15T10:30:00Z",
	}
	status, err := svc.RestoreChat(context.Background(), req)
	require.NoError(t, err)
	require.True(t, status.Success)

	req.Prompt = "overwrite attempt"
	status, err = svc.RestoreChat(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, status.Success)
	assert.Equal(t, "Chat with this id already exists", status.Error)

	chats, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "original", chats[0].Prompt)
}

func TestRestoreChatBadTimestamp(t *testing.T) {
	svc := newChatService(t, newFakeVectorRepo(), &fakePublisher{})

	status, err := svc.RestoreChat(context.Background(), &dto.RestoreChatRequest{
		Id:        uuid.New(),
		Prompt:    "x",
		Timestamp: "gestern",
	})
	require.NoError(t, err)
	assert.False(t, status.Success)
	assert.Contains(t, status.Error, "invalid timestamp")
}
