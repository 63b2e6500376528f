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

// maxRoutingAttempts caps consecutive general-chat entries without a
// successful section resolution before the conversation is hard-reset.
const maxRoutingAttempts = 3

const (
	initialGreetingMarker = "INITIAL_GREETING: Greet user, summarize JD, show sections with alignment scores."
	jdSummaryLimit        = 300
)

// GeneralChat is the conversation entry point, active while no section
// is selected. It handles free conversation and is the only transition
// into a section.
func (e *Engine) GeneralChat(ctx context.Context, state *types.ConversationState) Transition {
	// Loop cap fires before anything else, regardless of oracle output.
	if state.RoutingAttempts >= maxRoutingAttempts {
		log.Printf("maximum routing attempts (%d) reached, resetting conversation", maxRoutingAttempts)
		state.CurrentSection = ""
		state.ProposedSectionContent = ""
		state.RoutingAttempts = 0
		state.AppendMessage(types.RoleAssistant, "Let's start fresh - how can I help you with your resume?")
		return Stay
	}
	state.RoutingAttempts++

	if state.CurrentSection != "" {
		log.Printf("general chat invoked while in section %q, clearing", state.CurrentSection)
		state.CurrentSection = ""
		state.ProposedSectionContent = ""
	}

	last := state.LastMessage()
	firstTurn := last == nil || last.Role != types.RoleUser
	userText := initialGreetingMarker
	if !firstTurn {
		userText = last.Content
	}

	overview := compactSections(state)
	jdSummary := state.JDSummary
	if jdSummary == "" {
		jdSummary = "No JD provided"
	}

	systemPrompt := prompts.Format(prompts.MustGet(chatPromptFile, "general-chat"), map[string]string{
		"Sections":     mustJSON(overview),
		"JDSummary":    truncate(jdSummary, jdSummaryLimit),
		"SectionNames": sortedSectionList(state.AvailableSections()),
	})
	payload := map[string]any{
		"user_query":          userText,
		"sections_summary":    overview,
		"is_initial_greeting": firstTurn,
		"recent_messages":     recentTranscript(state),
	}

	dec, err := e.callDecision(ctx, "general chat", systemPrompt, payload, llm.TierLite, decision.GeneralChatActions, decision.ActionAnswer)
	if err != nil {
		log.Printf("general chat fault: %v", err)
		state.AppendMessage(types.RoleAssistant, "Could you please rephrase your request?")
		return Stay
	}
	// Any decision the oracle produced counts as progress; only faults
	// and malformed replies accumulate toward the reset cap.
	state.RoutingAttempts = 0

	if dec.Action == decision.ActionRoute && dec.Route != "" {
		resolved, ok := sections.Resolve(dec.Route, state.AvailableSections())
		if ok {
			state.CurrentSection = resolved
			return EnterSection
		}
		state.AppendMessage(types.RoleAssistant, fmt.Sprintf(
			"I couldn't find section '%s'. Available: %s. Which would you like to work on?",
			dec.Route, sortedSectionList(state.AvailableSections())))
		return Stay
	}

	answer := dec.Answer
	if answer == "" {
		answer = "How can I help you with your resume today?"
	}
	state.AppendMessage(types.RoleAssistant, answer)
	return Stay
}
