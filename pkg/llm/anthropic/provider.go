package anthropic

import (
	"context"
	"fmt"
	"strings"

	"devonaut-be/pkg/llm"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(anthropicoption.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (p *AnthropicProvider) buildParams(history []llm.Message, options *llm.Options) anthropic.MessageNewParams {
	msgs := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "assistant", "model":
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	maxTokens := int64(options.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(options.Temperature),
	}
	if options.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: options.SystemPrompt}}
	}
	return params
}

// ChatStream consumes the Anthropic SSE stream and forwards every text delta
// to onChunk as it arrives.
func (p *AnthropicProvider) ChatStream(ctx context.Context, history []llm.Message, onChunk llm.ChunkHandler, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	stream := p.client.Messages.NewStreaming(ctx, p.buildParams(history, options))
	defer stream.Close()

	var full strings.Builder
	for stream.Next() {
		select {
		case <-ctx.Done():
			return full.String(), ctx.Err()
		default:
		}

		event := stream.Current()
		switch variant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if d, ok := variant.Delta.AsAny().(anthropic.TextDelta); ok {
				full.WriteString(d.Text)
				if onChunk != nil {
					if err := onChunk(d.Text); err != nil {
						return full.String(), err
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return full.String(), fmt.Errorf("anthropic stream: %w", err)
	}
	return full.String(), nil
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.ChatStream(ctx, history, nil, opts...)
}
