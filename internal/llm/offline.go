package llm

import "context"

// OfflineClient is a deterministic stand-in used when no API key is
// configured. Each tier maps to a fixed canned response so the
// conversation loop stays exercisable end to end without network
// access or credentials.
type OfflineClient struct {
	responses map[ModelTier]string
}

// Canned offline replies, keyed by the tier each handler uses.
const (
	offlineDecision = `{"action":"answer","route":null,"answer":"(Offline) I received your query and will help once an API key is configured."}`
	offlineAnalysis = `{"alignment_score":75,"missing_requirements":["More examples needed"],"recommended_questions":["Can you add more concrete examples to this section?"],"analysis_summary":"Offline mode"}`
)

// NewOfflineClient creates an offline client with the default canned responses.
func NewOfflineClient() *OfflineClient {
	return &OfflineClient{
		responses: map[ModelTier]string{
			TierLite:     offlineDecision,
			TierStandard: offlineDecision,
			TierAdvanced: offlineDecision,
			TierAnalysis: offlineAnalysis,
		},
	}
}

// GenerateJSON returns the canned response for the tier.
func (c *OfflineClient) GenerateJSON(_ context.Context, _ string, _ any, tier ModelTier) (string, error) {
	if resp, ok := c.responses[tier]; ok {
		return resp, nil
	}
	return offlineDecision, nil
}

// Close is a no-op for the offline client.
func (c *OfflineClient) Close() error {
	return nil
}
