package provider

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini-2024-07-18"

// OpenAIProvider is an implementation of CompletionProvider using OpenAI's API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider constructs an OpenAIProvider. An empty baseURL keeps the
// client's default endpoint.
func NewOpenAIProvider(apiKey, llmModel, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	if llmModel == "" {
		llmModel = DefaultOpenAIModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  llmModel,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Model returns the fixed model identifier sent with every request.
func (p *OpenAIProvider) Model() string { return p.model }

// GetCompletions sends the conversation to the chat completions endpoint and
// returns the first choice.
func (p *OpenAIProvider) GetCompletions(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	ctx, span := startProviderSpan(ctx, p.Name(), p.model, req)
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	chatResp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		recordProviderError(span, err)
		return nil, err
	}
	if len(chatResp.Choices) == 0 {
		err := errors.New("no chat choices returned")
		recordProviderError(span, err)
		return nil, err
	}

	resp := &CompletionResponse{
		Text: chatResp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     chatResp.Usage.PromptTokens,
			CompletionTokens: chatResp.Usage.CompletionTokens,
		},
	}
	recordUsage(span, resp.Usage)
	return resp, nil
}
