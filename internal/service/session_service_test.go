package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"chat-vector-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T, vectorRepo *fakeVectorRepo, publisher *fakePublisher) ISessionService {
	t.Helper()
	return NewSessionService(
		newTestFactory(t),
		vectorRepo,
		&fakeEmbedder{},
		publisher,
		noopLogger{},
	)
}

func TestAddMessageSetsTitleFromFirstUserMessage(t *testing.T) {
	vectorRepo := newFakeVectorRepo()
	svc := newSessionService(t, vectorRepo, &fakePublisher{})

	session, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)
	require.Nil(t, session.Title)

	longText := strings.Repeat("ä", 80)
	msg, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
		Sender: "user",
		Text:   longText,
	})
	require.NoError(t, err)
	assert.Equal(t, "user", msg.Sender)

	sessions, err := svc.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].Title)
	assert.Equal(t, strings.Repeat("ä", 60), *sessions[0].Title)
	assert.Equal(t, int64(1), sessions[0].MessageCount)

	// The message is indexed with its session id attached.
	require.Len(t, vectorRepo.entries, 1)
	for _, entry := range vectorRepo.entries {
		require.NotNil(t, entry.SessionId)
		assert.Equal(t, session.Id, *entry.SessionId)
	}
}

func TestAddMessageKeepsExistingTitle(t *testing.T) {
	svc := newSessionService(t, newFakeVectorRepo(), &fakePublisher{})

	title := "Mein Thema"
	session, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{Title: &title})
	require.NoError(t, err)

	_, err = svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
		Sender: "user",
		Text:   "etwas ganz anderes",
	})
	require.NoError(t, err)

	sessions, err := svc.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Mein Thema", *sessions[0].Title)
}

func TestAddMessageUnknownSession(t *testing.T) {
	svc := newSessionService(t, newFakeVectorRepo(), &fakePublisher{})

	_, err := svc.AddMessage(context.Background(), uuid.New(), &dto.AddMessageRequest{
		Sender: "user",
		Text:   "hallo",
	})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetMessagesChronologicalPaging(t *testing.T) {
	svc := newSessionService(t, newFakeVectorRepo(), &fakePublisher{})

	session, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	texts := []string{"eins", "zwei", "drei", "vier", "fünf"}
	for _, text := range texts {
		_, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
			Sender: "user",
			Text:   text,
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	// Default page holds everything, oldest first.
	messages, err := svc.GetMessages(context.Background(), session.Id, 20, 0)
	require.NoError(t, err)
	require.Len(t, messages, 5)
	assert.Equal(t, "eins", messages[0].Text)
	assert.Equal(t, "fünf", messages[4].Text)

	// Second page of two, counted backwards from the newest.
	page, err := svc.GetMessages(context.Background(), session.Id, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "zwei", page[0].Text)
	assert.Equal(t, "drei", page[1].Text)
}

func TestDeleteSessionPublishesMessageIds(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newSessionService(t, newFakeVectorRepo(), publisher)

	session, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	var messageIds []uuid.UUID
	for _, text := range []string{"a", "b"} {
		msg, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
			Sender: "user",
			Text:   text,
		})
		require.NoError(t, err)
		messageIds = append(messageIds, msg.Id)
	}

	status, err := svc.DeleteSession(context.Background(), session.Id, true)
	require.NoError(t, err)
	assert.True(t, status.Success)

	sessions, err := svc.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)

	payloads := publisher.published()
	require.Len(t, payloads, 1)
	var cleanup dto.VectorCleanupMessage
	require.NoError(t, json.Unmarshal(payloads[0], &cleanup))
	assert.ElementsMatch(t, messageIds, cleanup.Ids)
}

func TestDeleteSessionKeepVectors(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newSessionService(t, newFakeVectorRepo(), publisher)

	session, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)
	_, err = svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
		Sender: "user",
		Text:   "bleibt im index",
	})
	require.NoError(t, err)

	status, err := svc.DeleteSession(context.Background(), session.Id, false)
	require.NoError(t, err)
	assert.True(t, status.Success)
	assert.Empty(t, publisher.published())
}

func TestDeleteSessionMissing(t *testing.T) {
	svc := newSessionService(t, newFakeVectorRepo(), &fakePublisher{})

	status, err := svc.DeleteSession(context.Background(), uuid.New(), true)
	require.NoError(t, err)
	assert.False(t, status.Success)
	assert.Equal(t, "Session not found", status.Error)
}

func TestRestoreSessionWithVectors(t *testing.T) {
	vectorRepo := newFakeVectorRepo()
	svc := newSessionService(t, vectorRepo, &fakePublisher{})

	title := "Wiederhergestellt"
	sessionId := uuid.New()
	resp, err := svc.RestoreSession(context.Background(), &dto.RestoreSessionRequest{
		Session: dto.RestoredSession{
			Id:        sessionId,
			Title:     &title,
			CreatedAt: "2026-02-01T08:00:00Z",
		},
		Messages: []dto.RestoredMessage{
			{Id: uuid.New(), Sender: "user", Text: "Frage", Timestamp: "2026-02-01T08:00:01Z"},
			{Id: uuid.New(), Sender: "assistant", Text: "Antwort", Timestamp: "2026-02-01T08:00:02Z"},
		},
		RestoreVectors: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.RestoredSessionId)
	assert.Equal(t, sessionId, *resp.RestoredSessionId)

	messages, err := svc.GetMessages(context.Background(), sessionId, 20, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Frage", messages[0].Text)

	assert.Len(t, vectorRepo.entries, 2)
}

func TestRestoreSessionDuplicateId(t *testing.T) {
	svc := newSessionService(t, newFakeVectorRepo(), &fakePublisher{})

	session, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	resp, err := svc.RestoreSession(context.Background(), &dto.RestoreSessionRequest{
		Session: dto.RestoredSession{Id: session.Id},
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Session with this id already exists", resp.Error)
}
