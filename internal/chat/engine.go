// Package chat implements the conversation state machine: general chat,
// per-section chat, the content updater, and the content applier, wired
// together by a small orchestrator. Handlers mutate a single
// ConversationState and return an explicit Transition; no handler ever
// lets an oracle fault escape to the caller.
package chat

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-coach/internal/decision"
	"github.com/jonathan/resume-coach/internal/llm"
	"github.com/jonathan/resume-coach/internal/types"
)

const chatPromptFile = "chat.json"

// historyWindow bounds the transcript slice shared with the oracle.
// The full transcript stays append-only in the state.
const historyWindow = 20

// Transition is the enumerated control signal a handler returns to the
// orchestrator. Stay ends the turn; the others name the next handler.
type Transition string

// Handler transitions.
const (
	Stay          Transition = "stay"
	EnterSection  Transition = "enter_section"
	ExitToGeneral Transition = "exit_to_general"
	RunUpdater    Transition = "run_updater"
	RunApplier    Transition = "run_applier"
)

// Engine owns the four conversation handlers and their shared oracle
// client. It is safe to drive multiple independent conversations through
// one Engine as long as each has its own ConversationState.
type Engine struct {
	client llm.Client
}

// NewEngine creates an engine backed by the given oracle client.
func NewEngine(client llm.Client) *Engine {
	return &Engine{client: client}
}

// callDecision is the single fallible wrapper around an oracle decision
// request: invoke, then extract. Oracle failures come back as
// OracleUnavailableError so each handler's fault branch stays in one place.
func (e *Engine) callDecision(ctx context.Context, stage, systemPrompt string, payload any, tier llm.ModelTier, allowed []decision.Action, fallback decision.Action) (*decision.Decision, error) {
	raw, err := e.client.GenerateJSON(ctx, systemPrompt, payload, tier)
	if err != nil {
		return nil, &OracleUnavailableError{Stage: stage, Cause: err}
	}
	return decision.Extract(raw, allowed, fallback)
}

// sectionOverview is the compact per-section view shown to the oracle in
// general chat: score plus the first two missing requirements only.
type sectionOverview struct {
	AlignmentScore      int      `json:"alignment_score"`
	MissingRequirements []string `json:"missing_requirements"`
}

func compactSections(state *types.ConversationState) map[types.SectionID]sectionOverview {
	out := make(map[types.SectionID]sectionOverview, len(state.SectionObjects))
	for id, meta := range state.SectionObjects {
		missing := meta.MissingRequirements
		if len(missing) > 2 {
			missing = missing[:2]
		}
		out[id] = sectionOverview{
			AlignmentScore:      meta.AlignmentScore,
			MissingRequirements: missing,
		}
	}
	return out
}

// transcriptEntry is the reduced message form sent to the oracle.
type transcriptEntry struct {
	Role    types.Role `json:"role"`
	Content string     `json:"content"`
}

// recentTranscript returns the last historyWindow messages stripped to
// role and content.
func recentTranscript(state *types.ConversationState) []transcriptEntry {
	msgs := state.Context
	if len(msgs) > historyWindow {
		msgs = msgs[len(msgs)-historyWindow:]
	}
	out := make([]transcriptEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, transcriptEntry{Role: m.Role, Content: m.Content})
	}
	return out
}

// mustJSON renders a value as compact JSON for prompt interpolation.
// Map keys marshal in sorted order, so the output is deterministic.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// sortedSectionList renders section ids as a sorted, comma-separated
// list for user-facing "available sections" messages.
func sortedSectionList(ids []types.SectionID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
