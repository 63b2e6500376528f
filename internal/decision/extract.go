// Package decision turns raw oracle text into typed decisions the
// conversation handlers can dispatch on. The oracle is untrusted and
// non-deterministic: everything here parses, validates, defaults, and
// coerces before any value is allowed to drive control flow.
package decision

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Action is the routing verb carried by an oracle decision.
type Action string

// Decision actions across both chat states.
const (
	ActionAnswer         Action = "answer"
	ActionRoute          Action = "route"
	ActionStay           Action = "stay"
	ActionSwitchSection  Action = "switch_section"
	ActionExitSection    Action = "exit_section"
	ActionTriggerUpdater Action = "trigger_updater"
	ActionTriggerApplier Action = "trigger_applier"
)

// GeneralChatActions is the allowed action set while in general chat.
var GeneralChatActions = []Action{ActionAnswer, ActionRoute}

// SectionChatActions is the allowed action set while inside a section.
var SectionChatActions = []Action{
	ActionStay,
	ActionSwitchSection,
	ActionExitSection,
	ActionTriggerUpdater,
	ActionTriggerApplier,
}

// Decision is the tagged result of extracting an oracle reply. Only
// Action is always meaningful; the remaining fields carry whatever the
// oracle supplied and default to zero values when absent.
type Decision struct {
	Action Action
	// Route is the requested target section name, unresolved. Taken
	// from "route" with "target_section" as fallback.
	Route string
	// Answer is the conversational reply text.
	Answer string
	// UpdatedAnswers carries positional answer updates; nil entries
	// mean "leave this slot alone". Nil slice when absent.
	UpdatedAnswers []*string
	// UpdatedContent and Summary are produced by rewrite requests.
	UpdatedContent string
	Summary        string
}

// objectPattern matches a balanced brace-delimited span with at most
// one level of nested braces, the shape of every decision object the
// prompts request.
var objectPattern = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

// Extract parses rawText into a Decision. Free text without any JSON
// object degrades to an answer decision rather than failing; an action
// outside the allowed set is coerced to the handler's safe fallback.
// Only empty input and an unparseable JSON span are irrecoverable.
func Extract(rawText string, allowed []Action, fallback Action) (*Decision, error) {
	obj, err := ExtractObject(rawText)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		// No JSON anywhere: treat the whole reply as a conversational answer.
		return &Decision{Action: ActionAnswer, Answer: strings.TrimSpace(rawText)}, nil
	}

	action, ok := obj["action"].(string)
	if !ok {
		return nil, &MalformedDecisionError{Message: "missing required 'action' key"}
	}

	dec := &Decision{Action: Action(action)}
	if !actionAllowed(dec.Action, allowed) {
		dec.Action = fallback
	}

	dec.Route = String(obj, "route")
	if dec.Route == "" {
		dec.Route = String(obj, "target_section")
	}
	dec.Answer = String(obj, "answer")
	dec.UpdatedAnswers = NullableStringList(obj, "updated_answers")
	dec.UpdatedContent = String(obj, "updated_content")
	dec.Summary = String(obj, "summary")

	return dec, nil
}

// ExtractObject finds and parses the first JSON-object-shaped span in
// rawText. Returns (nil, nil) when the text contains no object span,
// and MalformedDecisionError when the input is empty or the span is
// not valid JSON.
func ExtractObject(rawText string) (map[string]any, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &MalformedDecisionError{Message: "empty response"}
	}

	span := objectPattern.FindString(rawText)
	if span == "" {
		return nil, nil
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, &MalformedDecisionError{Message: "invalid JSON format", Cause: err}
	}
	return obj, nil
}

func actionAllowed(action Action, allowed []Action) bool {
	for _, a := range allowed {
		if a == action {
			return true
		}
	}
	return false
}

// String coerces an object field to a string, returning "" for absent,
// null, or non-string values.
func String(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// Number coerces an object field to a float64, reporting presence.
func Number(obj map[string]any, key string) (float64, bool) {
	n, ok := obj[key].(float64)
	return n, ok
}

// StringList coerces an object field to a list of strings, skipping
// non-string entries. Returns nil when the field is absent or not a list.
func StringList(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// NullableStringList coerces an object field to a list of optional
// strings, preserving nulls as nil entries so positional updates can
// skip slots. Non-string, non-null entries become nil. Returns nil
// when the field is absent or not a list.
func NullableStringList(obj map[string]any, key string) []*string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]*string, len(raw))
	for i, item := range raw {
		if s, ok := item.(string); ok {
			v := s
			out[i] = &v
		}
	}
	return out
}
