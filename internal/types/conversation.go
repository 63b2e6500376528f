// Package types provides type definitions for structured data used throughout the resume-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SectionID identifies one of the fixed resume sections.
type SectionID string

// Canonical section identifiers. The set is closed: routing decisions
// that name anything else must be resolved or rejected before they
// touch ConversationState.
const (
	SectionSkills          SectionID = "skills"
	SectionExperiences     SectionID = "experiences"
	SectionEducation       SectionID = "education"
	SectionProjects        SectionID = "projects"
	SectionSummary         SectionID = "summary"
	SectionContact         SectionID = "contact"
	SectionCertificates    SectionID = "certificates"
	SectionPublications    SectionID = "publications"
	SectionLanguages       SectionID = "languages"
	SectionRecommendations SectionID = "recommendations"
	SectionCustom          SectionID = "custom"
)

// CanonicalSections returns the full closed section set in stable order.
func CanonicalSections() []SectionID {
	return []SectionID{
		SectionSkills,
		SectionExperiences,
		SectionEducation,
		SectionProjects,
		SectionSummary,
		SectionContact,
		SectionCertificates,
		SectionPublications,
		SectionLanguages,
		SectionRecommendations,
		SectionCustom,
	}
}

// IsCanonicalSection reports whether id belongs to the closed section set.
func IsCanonicalSection(id SectionID) bool {
	for _, s := range CanonicalSections() {
		if s == id {
			return true
		}
	}
	return false
}

// Role is the author of a conversation message.
type Role string

// Message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation transcript.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// NewMessage creates a message with a fresh ID and an RFC 3339 UTC timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// SectionMeta holds the analysis results for one resume section.
type SectionMeta struct {
	AlignmentScore       int      `json:"alignment_score"`
	MissingRequirements  []string `json:"missing_requirements"`
	RecommendedQuestions []string `json:"recommended_questions"`
}

// ConversationState is the single mutable record for one conversation.
// It is created once per session, threaded explicitly through every
// handler, and never shared across conversations. An empty
// CurrentSection means general chat.
type ConversationState struct {
	CurrentSection         SectionID                 `json:"current_section,omitempty"`
	RoutingAttempts        int                       `json:"routing_attempts"`
	SectionObjects         map[SectionID]SectionMeta `json:"section_objects"`
	RecommendedAnswers     map[SectionID][]string    `json:"recommended_answers"`
	ResumeSections         map[SectionID]any         `json:"resume_sections"`
	ProposedSectionContent string                    `json:"proposed_section_content,omitempty"`
	Context                []Message                 `json:"context"`
	JDSummary              string                    `json:"jd_summary,omitempty"`
}

// NewConversationState creates an empty state with initialized maps.
func NewConversationState() *ConversationState {
	return &ConversationState{
		SectionObjects:     make(map[SectionID]SectionMeta),
		RecommendedAnswers: make(map[SectionID][]string),
		ResumeSections:     make(map[SectionID]any),
	}
}

// AppendMessage appends a message to the transcript and returns it.
// The transcript is append-only for the lifetime of a session.
func (s *ConversationState) AppendMessage(role Role, content string) Message {
	msg := NewMessage(role, content)
	s.Context = append(s.Context, msg)
	return msg
}

// LastMessage returns the most recent message, or nil if the
// transcript is empty.
func (s *ConversationState) LastMessage() *Message {
	if len(s.Context) == 0 {
		return nil
	}
	return &s.Context[len(s.Context)-1]
}

// LastAssistantMessages returns the trailing run of assistant messages,
// oldest first. This is what a caller presents to the end user after a
// turn completes.
func (s *ConversationState) LastAssistantMessages() []Message {
	end := len(s.Context)
	start := end
	for start > 0 && s.Context[start-1].Role == RoleAssistant {
		start--
	}
	return s.Context[start:end]
}

// AvailableSections returns the sections that have analysis metadata,
// in canonical order. Handlers resolve routing targets against this
// list, so the ordering must be deterministic.
func (s *ConversationState) AvailableSections() []SectionID {
	var out []SectionID
	for _, id := range CanonicalSections() {
		if _, ok := s.SectionObjects[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SectionContent returns the stored content for a section rendered as
// a string. Seed content may be structured (lists, maps); after the
// first applied rewrite a section always holds a plain string.
func (s *ConversationState) SectionContent(id SectionID) string {
	v, ok := s.ResumeSections[id]
	if !ok || v == nil {
		return ""
	}
	switch c := v.(type) {
	case string:
		return c
	default:
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Sprintf("%v", c)
		}
		return string(b)
	}
}

// CheckInvariants verifies the cross-state invariants that every
// handler must preserve. A violation indicates state corruption and is
// the only class of fault allowed to surface to the caller.
func (s *ConversationState) CheckInvariants() error {
	if s.CurrentSection != "" && !IsCanonicalSection(s.CurrentSection) {
		return fmt.Errorf("current section %q is not a canonical section", s.CurrentSection)
	}
	if s.ProposedSectionContent != "" && s.CurrentSection == "" {
		return fmt.Errorf("proposed content staged without an active section")
	}
	for id, meta := range s.SectionObjects {
		answers, ok := s.RecommendedAnswers[id]
		if !ok {
			continue
		}
		if len(answers) != len(meta.RecommendedQuestions) {
			return fmt.Errorf("section %q has %d answers for %d questions", id, len(answers), len(meta.RecommendedQuestions))
		}
	}
	return nil
}
