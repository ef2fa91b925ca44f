package unitofwork

import (
	"context"

	"chat-vector-be/internal/repository/contract"
)

// UnitOfWork scopes the relational repositories to one transaction.
// The vector index deliberately lives outside of it: the two stores
// never share a transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatHistoryRepository() contract.ChatHistoryRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
