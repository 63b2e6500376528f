package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-coach/internal/decision"
	"github.com/jonathan/resume-coach/internal/llm"
	"github.com/jonathan/resume-coach/internal/prompts"
	"github.com/jonathan/resume-coach/internal/sections"
	"github.com/jonathan/resume-coach/internal/types"
)

// SectionUpdater rewrites the active section from its answered
// questions and stages the result for explicit confirmation. It never
// commits anything itself.
func (e *Engine) SectionUpdater(ctx context.Context, state *types.ConversationState) Transition {
	if state.CurrentSection == "" {
		return ExitToGeneral
	}

	section := state.CurrentSection
	meta := state.SectionObjects[section]
	questions := meta.RecommendedQuestions
	answers := sections.Reconcile(section, questions, state.RecommendedAnswers)
	original := state.SectionContent(section)

	systemPrompt := prompts.Format(prompts.MustGet(chatPromptFile, "section-update"), map[string]string{
		"Section":  string(section),
		"Original": original,
		"QAPairs":  formatQAPairs(questions, answers),
	})
	payload := map[string]any{
		"original_content": original,
		"questions":        questions,
		"answers":          answers,
	}

	raw, err := e.client.GenerateJSON(ctx, systemPrompt, payload, llm.TierAdvanced)
	if err != nil {
		log.Printf("section updater fault in %q: %v", section, &OracleUnavailableError{Stage: "section update", Cause: err})
		state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
			"Trouble updating %s content. Let's continue working on it.", section))
		return EnterSection
	}

	updated, summary := "", "Content updated"
	if obj, err := decision.ExtractObject(raw); err == nil && obj != nil {
		updated = strings.TrimSpace(decision.String(obj, "updated_content"))
		if s := decision.String(obj, "summary"); s != "" {
			summary = s
		}
	}

	if updated == "" {
		state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
			"Having trouble updating %s. Let's continue.", section))
		return EnterSection
	}

	state.ProposedSectionContent = updated
	state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
		"%s\n\n**Updated %s:**\n\n%s\n\nApply these changes? (say 'yes' or 'apply')",
		summary, section, updated))
	return EnterSection
}

// formatQAPairs renders the answered question/answer pairs for the
// rewrite prompt, skipping blank answers.
func formatQAPairs(questions, answers []string) string {
	var b strings.Builder
	for i, q := range questions {
		if i >= len(answers) || strings.TrimSpace(answers[i]) == "" {
			continue
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, q, i+1, answers[i])
	}
	return b.String()
}
