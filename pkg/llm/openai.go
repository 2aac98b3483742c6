package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when no model is configured
const DefaultOpenAIModel = string(openai.ChatModelGPT4oMini)

// OpenAI generates text with the chat completions API
type OpenAI struct {
	client openai.Client
	model  string
	opts   []option.RequestOption
}

// OpenAIOption configures an OpenAI generator
type OpenAIOption func(*OpenAI)

// WithOpenAIModel sets the model name
func WithOpenAIModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		o.model = model
	}
}

// WithOpenAIBaseURL points the client at another endpoint (tests, proxies)
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(o *OpenAI) {
		o.opts = append(o.opts, option.WithBaseURL(url))
	}
}

// NewOpenAI creates an OpenAI generator
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	o := &OpenAI{model: DefaultOpenAIModel}
	for _, opt := range opts {
		opt(o)
	}

	// no retries, a failed call falls back straight away
	requestOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, o.opts...)
	o.client = openai.NewClient(requestOpts...)

	return o, nil
}

// Generate sends one prompt and returns the first choice's content
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.7),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoResponse
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", ErrNoResponse
	}
	return text, nil
}
