package provider

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/like-mike/listener-relay/provider"

// startProviderSpan opens the invoke_provider span. Message contents are not
// recorded, only their count and size.
func startProviderSpan(ctx context.Context, providerName, model string, req *CompletionRequest) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "invoke_provider")

	size := 0
	for _, m := range req.Messages {
		size += len(m.Content)
	}

	span.SetAttributes(
		attribute.String("llm.provider", providerName),
		attribute.String("llm.model", model),
		attribute.Int("llm.request.messages", len(req.Messages)),
		attribute.Int("llm.request.size_bytes", size),
	)
	return ctx, span
}

func recordProviderError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.message", err.Error()))
}

func recordUsage(span trace.Span, usage Usage) {
	span.SetAttributes(
		attribute.Int("llm.usage.prompt_tokens", usage.PromptTokens),
		attribute.Int("llm.usage.completion_tokens", usage.CompletionTokens),
	)
}
