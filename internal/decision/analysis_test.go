package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnalysis_FullPayload(t *testing.T) {
	raw := `{"alignment_score": 90, "missing_requirements": [], "recommended_questions": [], "analysis_summary": "Strong match"}`
	analysis := ExtractAnalysis(raw)
	assert.Equal(t, 90, analysis.AlignmentScore)
	assert.Empty(t, analysis.MissingRequirements)
	assert.Empty(t, analysis.RecommendedQuestions)
	assert.Equal(t, "Strong match", analysis.Summary)
}

func TestExtractAnalysis_DefaultsOnGarbage(t *testing.T) {
	for _, input := range []string{"", "no json here", `{"alignment_score": "not a number"}`} {
		analysis := ExtractAnalysis(input)
		assert.Equal(t, defaultAlignmentScore, analysis.AlignmentScore, "input %q", input)
		assert.Empty(t, analysis.MissingRequirements)
		assert.Empty(t, analysis.RecommendedQuestions)
		assert.Equal(t, defaultAnalysisSummary, analysis.Summary)
	}
}

func TestExtractAnalysis_PartialPayloadDefaultsMissingKeys(t *testing.T) {
	analysis := ExtractAnalysis(`{"alignment_score": 42}`)
	assert.Equal(t, 42, analysis.AlignmentScore)
	assert.Empty(t, analysis.MissingRequirements)
	assert.Empty(t, analysis.RecommendedQuestions)
	assert.Equal(t, defaultAnalysisSummary, analysis.Summary)
}

func TestExtractAnalysis_ClampsListLengths(t *testing.T) {
	raw := `{"alignment_score": 60,
		"missing_requirements": ["a","b","c","d","e","f"],
		"recommended_questions": ["q1","q2","q3","q4","q5"]}`
	analysis := ExtractAnalysis(raw)
	require.Len(t, analysis.MissingRequirements, 4)
	require.Len(t, analysis.RecommendedQuestions, 4)
}

func TestExtractAnalysis_OutOfRangeScoreFallsBack(t *testing.T) {
	analysis := ExtractAnalysis(`{"alignment_score": 900, "missing_requirements": [], "recommended_questions": []}`)
	assert.Equal(t, defaultAlignmentScore, analysis.AlignmentScore)
}

func TestExtractAnalysis_SurroundingProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n" +
		`{"alignment_score": 85, "missing_requirements": ["GCP"], "recommended_questions": ["Any GCP projects?"], "analysis_summary": "Better"}`
	analysis := ExtractAnalysis(raw)
	assert.Equal(t, 85, analysis.AlignmentScore)
	assert.Equal(t, []string{"GCP"}, analysis.MissingRequirements)
	assert.Equal(t, []string{"Any GCP projects?"}, analysis.RecommendedQuestions)
	assert.Equal(t, "Better", analysis.Summary)
}
