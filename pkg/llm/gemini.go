package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini generates text with Google's Gemini API
type Gemini struct {
	client  *genai.Client
	model   string
	baseURL string
}

// GeminiOption configures a Gemini generator
type GeminiOption func(*Gemini)

// WithGeminiModel sets the model name
func WithGeminiModel(model string) GeminiOption {
	return func(g *Gemini) {
		g.model = model
	}
}

// WithGeminiBaseURL points the client at another endpoint (tests, proxies)
func WithGeminiBaseURL(url string) GeminiOption {
	return func(g *Gemini) {
		g.baseURL = url
	}
}

// NewGemini creates a Gemini generator using API key auth
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	g := &Gemini{model: DefaultGeminiModel}
	for _, opt := range opts {
		opt(g)
	}

	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

// Generate sends one prompt and returns the text of the first candidate
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", ErrNoResponse
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoResponse
	}
	return text, nil
}
