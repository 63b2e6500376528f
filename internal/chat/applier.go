package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-coach/internal/decision"
	"github.com/jonathan/resume-coach/internal/llm"
	"github.com/jonathan/resume-coach/internal/prompts"
	"github.com/jonathan/resume-coach/internal/sections"
	"github.com/jonathan/resume-coach/internal/types"
)

// SectionApplier commits staged content to the active section, then
// re-analyzes the section against the job description to refresh its
// score, gaps, and question list. The commit is never rolled back by an
// analysis failure.
func (e *Engine) SectionApplier(ctx context.Context, state *types.ConversationState) Transition {
	if state.CurrentSection == "" {
		return ExitToGeneral
	}

	section := state.CurrentSection
	content := state.ProposedSectionContent
	if content == "" {
		content = state.SectionContent(section)
	}
	if content == "" {
		state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
			"No content to apply for %s. Please try again.", section))
		return EnterSection
	}

	// Commit first; the staged proposal is consumed either way.
	state.ResumeSections[section] = content
	state.ProposedSectionContent = ""

	systemPrompt := prompts.Format(prompts.MustGet(chatPromptFile, "section-analysis"), map[string]string{
		"JDSummary": state.JDSummary,
		"Section":   string(section),
		"Content":   content,
	})
	payload := map[string]any{
		"section": section,
		"content": content,
	}

	raw, err := e.client.GenerateJSON(ctx, systemPrompt, payload, llm.TierAnalysis)
	if err != nil {
		log.Printf("section applier fault in %q: %v", section, &OracleUnavailableError{Stage: "section analysis", Cause: err})
		state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
			"Changes saved to %s, but analysis failed. Continue working on this section.", section))
		return EnterSection
	}

	analysis := decision.ExtractAnalysis(raw)
	state.SectionObjects[section] = types.SectionMeta{
		AlignmentScore:       analysis.AlignmentScore,
		MissingRequirements:  analysis.MissingRequirements,
		RecommendedQuestions: analysis.RecommendedQuestions,
	}
	sections.Reconcile(section, analysis.RecommendedQuestions, state.RecommendedAnswers)

	msg := fmt.Sprintf("Applied changes to %s!\n\nNew alignment: %d%%\n%s\n\n",
		section, analysis.AlignmentScore, analysis.Summary)
	if n := len(analysis.RecommendedQuestions); n > 0 {
		msg += fmt.Sprintf("Continue with %d more questions?", n)
	} else {
		msg += "Section complete! Switch to another section or continue refining."
	}
	state.AppendMessage(types.RoleAssistant, msg)
	return EnterSection
}
