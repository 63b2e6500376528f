package chat

import (
	"context"
	"errors"

	"github.com/jonathan/resume-coach/internal/llm"
	"github.com/jonathan/resume-coach/internal/types"
)

// scriptedCall records one oracle invocation for assertions.
type scriptedCall struct {
	SystemPrompt string
	Payload      map[string]any
	Tier         llm.ModelTier
}

// scriptedClient replays a fixed sequence of replies (or errors) and
// records every call it receives.
type scriptedClient struct {
	replies []string
	errs    []error
	calls   []scriptedCall
	next    int
}

func (c *scriptedClient) GenerateJSON(_ context.Context, systemPrompt string, payload any, tier llm.ModelTier) (string, error) {
	call := scriptedCall{SystemPrompt: systemPrompt, Tier: tier}
	if m, ok := payload.(map[string]any); ok {
		call.Payload = m
	}
	c.calls = append(c.calls, call)

	i := c.next
	c.next++
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.replies) {
		return c.replies[i], nil
	}
	return "", errors.New("scripted client exhausted")
}

func (c *scriptedClient) Close() error { return nil }

// skillsState builds a state with analyzed skills and education
// sections, the shape a session has after JD ingestion.
func skillsState() *types.ConversationState {
	state := types.NewConversationState()
	state.JDSummary = "Senior platform engineer: Go, Terraform, Kubernetes."
	state.SectionObjects[types.SectionSkills] = types.SectionMeta{
		AlignmentScore:      55,
		MissingRequirements: []string{"Terraform", "Kubernetes", "CI/CD"},
		RecommendedQuestions: []string{
			"Which cloud providers have you used?",
			"Do you have Kubernetes experience?",
			"Have you used Terraform in production?",
		},
	}
	state.SectionObjects[types.SectionEducation] = types.SectionMeta{
		AlignmentScore:       80,
		MissingRequirements:  []string{},
		RecommendedQuestions: []string{},
	}
	state.ResumeSections[types.SectionSkills] = "Go, Python, SQL"
	return state
}
