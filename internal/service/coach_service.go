package service

import (
	"context"
)

// CoachService proxies the conversational security coach. The mode picks a
// fixed system prompt; history is forwarded verbatim so the model keeps the
// thread.
type CoachService struct {
	AI *AIService
}

func NewCoachService(ai *AIService) *CoachService {
	return &CoachService{AI: ai}
}

type CoachRequest struct {
	Mode     string          `json:"mode"`
	Messages []AIChatMessage `json:"messages" binding:"required"`
	Context  string          `json:"context"`
}

func (s *CoachService) buildMessages(req CoachRequest) []AIChatMessage {
	mode := ParseCoachMode(req.Mode)

	system := mode.SystemPrompt()
	if req.Context != "" {
		system += "\n\nCurrent training context: " + req.Context
	}

	messages := make([]AIChatMessage, 0, len(req.Messages)+1)
	messages = append(messages, AIChatMessage{Role: "system", Content: system})
	messages = append(messages, req.Messages...)
	return messages
}

// Chat returns a single completed coach reply.
func (s *CoachService) Chat(ctx context.Context, req CoachRequest) (string, error) {
	return s.AI.Chat(ctx, s.buildMessages(req))
}

// ChatStream streams the coach reply chunk by chunk.
func (s *CoachService) ChatStream(req CoachRequest) (<-chan string, <-chan error) {
	return s.AI.ChatStream(s.buildMessages(req))
}
