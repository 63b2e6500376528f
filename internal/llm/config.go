// Package llm provides centralized LLM configuration and client abstractions.
// This package enables easy switching between model tiers and future multi-provider support.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: general-chat routing decisions
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: in-section conversation decisions
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: section content rewriting
	TierAdvanced ModelTier = "advanced"
	// TierAnalysis is for alignment re-analysis after content is applied
	TierAnalysis ModelTier = "analysis"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOffline is the deterministic no-credentials provider
	ProviderOffline Provider = "offline"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// MaxTokens bounds output size per tier. Zero means provider default.
	MaxTokens map[ModelTier]int32
	// Verbose enables best-effort token usage reporting.
	Verbose bool
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
			TierAnalysis: "gemini-2.5-flash",
		},
		MaxTokens: map[ModelTier]int32{
			TierLite:     400,
			TierStandard: 500,
			TierAdvanced: 600,
			TierAnalysis: 400,
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// GetMaxTokens returns the output token bound for a given tier.
func (c *Config) GetMaxTokens(tier ModelTier) int32 {
	if c.MaxTokens == nil {
		return 0
	}
	return c.MaxTokens[tier]
}

