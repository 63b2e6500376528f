package decision

import (
	"encoding/json"

	"github.com/jonathan/resume-coach/internal/schemas"
)

// Defaults applied when the oracle's analysis reply is missing keys or
// cannot be parsed at all. An analysis failure must never fail a turn.
const (
	defaultAlignmentScore  = 70
	defaultAnalysisSummary = "Updated successfully"
	maxMissingRequirements = 4
	maxRecommendedQs       = 4
)

// Analysis is the re-analysis result for one resume section.
type Analysis struct {
	AlignmentScore       int
	MissingRequirements  []string
	RecommendedQuestions []string
	Summary              string
}

// analysisWire mirrors the schema-validated JSON shape.
type analysisWire struct {
	AlignmentScore       float64  `json:"alignment_score"`
	MissingRequirements  []string `json:"missing_requirements"`
	RecommendedQuestions []string `json:"recommended_questions"`
	AnalysisSummary      string   `json:"analysis_summary"`
}

// ExtractAnalysis parses an oracle analysis reply, defaulting every
// missing or unusable field. It never fails: garbage in yields the
// default analysis out.
func ExtractAnalysis(rawText string) *Analysis {
	out := defaultAnalysis()

	obj, err := ExtractObject(rawText)
	if err != nil || obj == nil {
		return out
	}

	// Prefer the schema-validated strict path; fall back to
	// field-by-field coercion for almost-right payloads.
	if doc, err := json.Marshal(obj); err == nil {
		if schemas.ValidateAnalysis(doc) == nil {
			var wire analysisWire
			if err := json.Unmarshal(doc, &wire); err == nil {
				out.AlignmentScore = int(wire.AlignmentScore)
				out.MissingRequirements = clampList(wire.MissingRequirements, maxMissingRequirements)
				out.RecommendedQuestions = clampList(wire.RecommendedQuestions, maxRecommendedQs)
				if wire.AnalysisSummary != "" {
					out.Summary = wire.AnalysisSummary
				}
				return out
			}
		}
	}

	if score, ok := Number(obj, "alignment_score"); ok && score >= 0 && score <= 100 {
		out.AlignmentScore = int(score)
	}
	if reqs := StringList(obj, "missing_requirements"); reqs != nil {
		out.MissingRequirements = clampList(reqs, maxMissingRequirements)
	}
	if qs := StringList(obj, "recommended_questions"); qs != nil {
		out.RecommendedQuestions = clampList(qs, maxRecommendedQs)
	}
	if summary := String(obj, "analysis_summary"); summary != "" {
		out.Summary = summary
	}
	return out
}

func defaultAnalysis() *Analysis {
	return &Analysis{
		AlignmentScore:       defaultAlignmentScore,
		MissingRequirements:  []string{},
		RecommendedQuestions: []string{},
		Summary:              defaultAnalysisSummary,
	}
}

func clampList(items []string, max int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > max {
		return items[:max]
	}
	return items
}
