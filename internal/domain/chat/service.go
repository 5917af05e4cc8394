package chat

import "context"

// ChatService answers questions about the cached dashboard snapshot.
// It keeps no conversation state.
type ChatService interface {
	Ask(ctx context.Context, req AskRequest) (*Answer, error)
	Questions() []Intent
}
