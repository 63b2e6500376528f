package chat

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/jonathan/resume-coach/internal/decision"
	"github.com/jonathan/resume-coach/internal/llm"
	"github.com/jonathan/resume-coach/internal/prompts"
	"github.com/jonathan/resume-coach/internal/sections"
	"github.com/jonathan/resume-coach/internal/types"
)

// SectionChat handles everything that happens while a section is
// active: answering questions, switching sections, exiting, and deciding
// when to hand off to the updater or applier.
func (e *Engine) SectionChat(ctx context.Context, state *types.ConversationState) Transition {
	if state.CurrentSection == "" {
		state.AppendMessage(types.RoleAssistant, "Please select a section to work on.")
		return ExitToGeneral
	}

	section := state.CurrentSection
	meta := state.SectionObjects[section]
	questions := meta.RecommendedQuestions
	answers := sections.Reconcile(section, questions, state.RecommendedAnswers)
	available := state.AvailableSections()

	last := state.LastMessage()
	entry := last == nil || last.Role != types.RoleUser
	userText := fmt.Sprintf("SECTION_ENTRY: User just entered %s section.", section)
	if !entry {
		userText = last.Content
	}

	allAnswered := sections.AllAnswered(questions, answers)
	proposalPending := state.ProposedSectionContent != ""

	systemPrompt := prompts.Format(prompts.MustGet(chatPromptFile, "section-chat"), map[string]string{
		"Section":         string(section),
		"Questions":       mustJSON(questions),
		"Answers":         mustJSON(answers),
		"AllAnswered":     strconv.FormatBool(allAnswered),
		"ProposalPending": strconv.FormatBool(proposalPending),
		"SectionNames":    sortedSectionList(available),
		"AlignmentScore":  strconv.Itoa(meta.AlignmentScore),
	})
	payload := map[string]any{
		"user_message":       userText,
		"current_section":    section,
		"available_sections": available,
		"questions":          questions,
		"answers":            answers,
		"all_answered":       allAnswered,
		"proposal_pending":   proposalPending,
		"recent_messages":    recentTranscript(state),
	}

	dec, err := e.callDecision(ctx, "section chat", systemPrompt, payload, llm.TierStandard, decision.SectionChatActions, decision.ActionStay)
	if err != nil {
		log.Printf("section chat fault in %q: %v", section, err)
		state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
			"I'm here to help with your %s section. What would you like to know?", section))
		return EnterSection
	}

	// Answer updates apply before any routing decision takes effect.
	if dec.UpdatedAnswers != nil {
		sections.ApplyUpdates(answers, dec.UpdatedAnswers)
	}

	switch dec.Action {
	case decision.ActionSwitchSection:
		if dec.Route == "" {
			break
		}
		resolved, ok := sections.Resolve(dec.Route, available)
		switch {
		case ok && resolved != section:
			state.CurrentSection = resolved
			state.ProposedSectionContent = ""
			if dec.Answer != "" {
				state.AppendMessage(types.RoleAssistant, dec.Answer)
			}
			return EnterSection
		case ok:
			// Same section: acknowledge, touch nothing.
			msg := dec.Answer
			if msg == "" {
				msg = fmt.Sprintf("You're already in the %s section. How can I help you improve it?", section)
			}
			state.AppendMessage(types.RoleAssistant, msg)
			return EnterSection
		default:
			state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
				"I couldn't find section '%s'. Available: %s. Staying in %s.",
				dec.Route, sortedSectionList(available), section))
			return EnterSection
		}

	case decision.ActionExitSection:
		state.CurrentSection = ""
		state.ProposedSectionContent = ""
		msg := dec.Answer
		if msg == "" {
			msg = "Returning to general chat. How can I help with your resume?"
		}
		state.AppendMessage(types.RoleAssistant, msg)
		return ExitToGeneral

	case decision.ActionTriggerUpdater:
		if dec.Answer != "" {
			state.AppendMessage(types.RoleAssistant, dec.Answer)
		}
		return RunUpdater

	case decision.ActionTriggerApplier:
		if dec.Answer != "" {
			state.AppendMessage(types.RoleAssistant, dec.Answer)
		}
		return RunApplier
	}

	// stay, or switch_section without a target: end the turn.
	if dec.Answer != "" {
		state.AppendMessage(types.RoleAssistant, dec.Answer)
	}
	return Stay
}
