package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers. The assistant only ever
// asks for JSON-shaped decisions: a system prompt establishing the
// decision schema plus a compact JSON payload of turn context.
type Client interface {
	// GenerateJSON sends the system prompt and payload to the model for
	// the given tier and returns the raw response text with any markdown
	// fences stripped.
	GenerateJSON(ctx context.Context, systemPrompt string, payload any, tier ModelTier) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration. An empty
// API key selects the deterministic offline client so the assistant
// stays usable without credentials.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if apiKey == "" || config.Provider == ProviderOffline {
		return NewOfflineClient(), nil
	}

	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON generates a JSON decision using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, systemPrompt string, payload any, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	userText, err := compactJSON(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	if maxTokens := c.config.GetMaxTokens(tier); maxTokens > 0 {
		model.SetMaxOutputTokens(maxTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if c.config.Verbose {
		logUsage(resp, string(tier))
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// compactJSON marshals the payload without indentation to keep prompt
// tokens small.
func compactJSON(payload any) (string, error) {
	if payload == nil {
		return "{}", nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// logUsage is a best-effort token usage reporter for verbose mode.
func logUsage(resp *genai.GenerateContentResponse, label string) {
	if resp == nil || resp.UsageMetadata == nil {
		return
	}
	u := resp.UsageMetadata
	log.Printf("[token usage %s] prompt=%d completion=%d total=%d",
		label, u.PromptTokenCount, u.CandidatesTokenCount, u.TotalTokenCount)
}
