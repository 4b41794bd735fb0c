// Package chat relays a single user message to the completion provider
// under a fixed system persona.
package chat

import (
	"context"
	"time"

	"github.com/like-mike/listener-relay/metrics"
	"github.com/like-mike/listener-relay/provider"
)

// Relay is stateless; one Relay serves every request concurrently.
type Relay struct {
	provider     provider.CompletionProvider
	systemPrompt string
}

func NewRelay(p provider.CompletionProvider, systemPrompt string) *Relay {
	return &Relay{
		provider:     p,
		systemPrompt: systemPrompt,
	}
}

// Conversation returns the system persona followed by the user's message,
// verbatim.
func (r *Relay) Conversation(message string) []provider.ChatMessage {
	return []provider.ChatMessage{
		{Role: provider.RoleSystem, Content: r.systemPrompt},
		{Role: provider.RoleUser, Content: message},
	}
}

// Reply makes exactly one completion call and returns the first choice.
// Errors are returned as-is; there is no retry.
func (r *Relay) Reply(ctx context.Context, message string) (*provider.CompletionResponse, error) {
	name := r.provider.Name()

	start := time.Now()
	resp, err := r.provider.GetCompletions(ctx, &provider.CompletionRequest{
		Messages: r.Conversation(message),
	})
	metrics.CompletionDurationSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues(name, metrics.OutcomeFailed).Inc()
		return nil, err
	}

	metrics.RelayRequestsTotal.WithLabelValues(name, metrics.OutcomeCompleted).Inc()
	if resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
		metrics.LlmTokens.WithLabelValues(name, "prompt").Observe(float64(resp.Usage.PromptTokens))
		metrics.LlmTokens.WithLabelValues(name, "completion").Observe(float64(resp.Usage.CompletionTokens))
	}
	return resp, nil
}
