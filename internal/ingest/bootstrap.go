package ingest

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-coach/internal/decision"
	"github.com/jonathan/resume-coach/internal/llm"
	"github.com/jonathan/resume-coach/internal/prompts"
	"github.com/jonathan/resume-coach/internal/sections"
	"github.com/jonathan/resume-coach/internal/types"
)

// summaryFallbackChars bounds the excerpt used when the oracle cannot
// produce a summary.
const summaryFallbackChars = 300

// Summarize asks the oracle for a compact JD summary. Any fault or
// unusable reply degrades to a leading excerpt of the raw text, so a
// session can always be bootstrapped.
func Summarize(ctx context.Context, client llm.Client, jobText string) string {
	systemPrompt := prompts.Format(prompts.MustGet("chat.json", "jd-summary"), map[string]string{
		"JobText": jobText,
	})
	raw, err := client.GenerateJSON(ctx, systemPrompt, map[string]any{"job_text": jobText}, llm.TierStandard)
	if err != nil {
		log.Printf("jd summary fault: %v", err)
		return excerpt(jobText)
	}
	if obj, err := decision.ExtractObject(raw); err == nil && obj != nil {
		if s := strings.TrimSpace(decision.String(obj, "summary")); s != "" {
			return s
		}
	}
	return excerpt(jobText)
}

// AnalyzeSection runs the initial alignment analysis for one resume
// section against the JD summary. Faults yield the default analysis
// rather than failing the bootstrap.
func AnalyzeSection(ctx context.Context, client llm.Client, jdSummary string, section types.SectionID, content string) types.SectionMeta {
	systemPrompt := prompts.Format(prompts.MustGet("chat.json", "section-analysis"), map[string]string{
		"JDSummary": jdSummary,
		"Section":   string(section),
		"Content":   content,
	})
	payload := map[string]any{
		"section": section,
		"content": content,
	}

	raw, err := client.GenerateJSON(ctx, systemPrompt, payload, llm.TierAnalysis)
	if err != nil {
		log.Printf("initial analysis fault for %q: %v", section, err)
		raw = ""
	}
	analysis := decision.ExtractAnalysis(raw)
	return types.SectionMeta{
		AlignmentScore:       analysis.AlignmentScore,
		MissingRequirements:  analysis.MissingRequirements,
		RecommendedQuestions: analysis.RecommendedQuestions,
	}
}

// BootstrapState builds the initial ConversationState for a session:
// resume content stored per section, a JD summary, per-section analysis
// metadata, and a reconciled answer ledger.
func BootstrapState(ctx context.Context, client llm.Client, resume map[types.SectionID]any, jobText string) *types.ConversationState {
	state := types.NewConversationState()
	state.JDSummary = Summarize(ctx, client, jobText)

	for _, id := range types.CanonicalSections() {
		content, ok := resume[id]
		if !ok {
			continue
		}
		state.ResumeSections[id] = content
		meta := AnalyzeSection(ctx, client, state.JDSummary, id, state.SectionContent(id))
		state.SectionObjects[id] = meta
		sections.Reconcile(id, meta.RecommendedQuestions, state.RecommendedAnswers)
	}
	return state
}

// excerpt returns the leading summaryFallbackChars bytes of text,
// backed up to a rune boundary so the cut never produces invalid UTF-8.
func excerpt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= summaryFallbackChars {
		return text
	}
	cut := summaryFallbackChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
