package provider

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single chat message with role and content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents the input for a chat completion request.
type CompletionRequest struct {
	Messages []ChatMessage
}

// Usage reports token counts when the backend returns them.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// CompletionResponse represents the text output from a completion request.
type CompletionResponse struct {
	Text  string
	Usage Usage
}

// CompletionProvider defines an interface for completion services.
type CompletionProvider interface {
	GetCompletions(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	Name() string
}
