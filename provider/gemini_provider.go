package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

type geminiModelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider is an implementation of CompletionProvider using the Gemini API.
type GeminiProvider struct {
	models geminiModelsClient
	model  string
}

// NewGeminiProvider constructs a GeminiProvider backed by the Gemini API.
func NewGeminiProvider(ctx context.Context, apiKey, llmModel string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return newGeminiProvider(client.Models, llmModel), nil
}

func newGeminiProvider(models geminiModelsClient, llmModel string) *GeminiProvider {
	if llmModel == "" {
		llmModel = DefaultGeminiModel
	}
	return &GeminiProvider{models: models, model: llmModel}
}

func (p *GeminiProvider) Name() string { return "gemini" }

// Model returns the fixed model identifier sent with every request.
func (p *GeminiProvider) Model() string { return p.model }

// GetCompletions sends the conversation to GenerateContent. System messages
// become the system instruction.
func (p *GeminiProvider) GetCompletions(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	ctx, span := startProviderSpan(ctx, p.Name(), p.model, req)
	defer span.End()

	contents, cfg := buildGeminiRequest(req.Messages)

	resp, err := p.models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		recordProviderError(span, err)
		return nil, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		err := errors.New("no candidates returned")
		recordProviderError(span, err)
		return nil, err
	}

	out := &CompletionResponse{Text: candidateText(resp.Candidates[0])}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	recordUsage(span, out.Usage)
	return out, nil
}

func buildGeminiRequest(messages []ChatMessage) ([]*genai.Content, *genai.GenerateContentConfig) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	cfg := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}
	return contents, cfg
}

func candidateText(c *genai.Candidate) string {
	if c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
