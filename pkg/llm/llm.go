// Package llm wraps the generative text providers behind one small interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingAPIKey is returned by constructors when no key is configured
	ErrMissingAPIKey = errors.New("generative provider API key is not set")
	// ErrNoResponse means the provider answered but gave us no text
	ErrNoResponse = errors.New("generative provider returned no text")
	// ErrUnknownProvider is returned by New for a provider name it doesn't know
	ErrUnknownProvider = errors.New("unknown generative provider")
)

// Generator turns a prompt into raw text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider names accepted by New
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// systemPrompt steers both providers towards bare JSON
const systemPrompt = "You are a curriculum designer. Reply with a single JSON object and nothing else."

// Settings picks and configures a provider
type Settings struct {
	Provider string
	APIKey   string
	Model    string // empty means the provider default
}

// New builds the Generator named by s.Provider
func New(ctx context.Context, s Settings) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderGemini:
		var opts []GeminiOption
		if s.Model != "" {
			opts = append(opts, WithGeminiModel(s.Model))
		}
		g, err := NewGemini(ctx, s.APIKey, opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderOpenAI:
		var opts []OpenAIOption
		if s.Model != "" {
			opts = append(opts, WithOpenAIModel(s.Model))
		}
		o, err := NewOpenAI(s.APIKey, opts...)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, s.Provider)
	}
}
