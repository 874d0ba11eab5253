package interfaces

import (
	"context"

	"wanderlust/backend/internal/model"
)

// SessionService is the contract the API layer drives a conversation through.
type SessionService interface {
	Send(ctx context.Context, text string) bool
	ToggleLanguage() model.Language
	SetLanguage(lang model.Language) bool
	ClearConversation(ctx context.Context, confirmed bool) bool
	Messages() []model.Message
	Snapshot() *model.SessionView
}
