package sections

import (
	"testing"

	"github.com/jonathan/resume-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestReconcile_CreatesEmptyList(t *testing.T) {
	answers := make(map[types.SectionID][]string)
	questions := []string{"q1", "q2", "q3"}

	got := Reconcile(types.SectionSkills, questions, answers)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"", "", ""}, got)
	assert.Equal(t, got, answers[types.SectionSkills])
}

func TestReconcile_PreservesByIndexOnShrink(t *testing.T) {
	answers := map[types.SectionID][]string{
		types.SectionSkills: {"first", "second", "third"},
	}

	// Re-analysis reduced the question set from 3 to 2: the first two
	// answers survive positionally, the third is dropped.
	got := Reconcile(types.SectionSkills, []string{"new q1", "new q2"}, answers)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestReconcile_PadsOnGrow(t *testing.T) {
	answers := map[types.SectionID][]string{
		types.SectionProjects: {"kept"},
	}

	got := Reconcile(types.SectionProjects, []string{"q1", "q2", "q3"}, answers)
	assert.Equal(t, []string{"kept", "", ""}, got)
}

func TestReconcile_MatchingLengthUntouched(t *testing.T) {
	answers := map[types.SectionID][]string{
		types.SectionSkills: {"a", "b"},
	}

	got := Reconcile(types.SectionSkills, []string{"q1", "q2"}, answers)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestApplyUpdates_OverwritesNonBlank(t *testing.T) {
	answers := []string{"", "old", ""}

	ApplyUpdates(answers, []*string{nil, nil, strPtr("Yes, used Terraform for three production deployments")})
	assert.Equal(t, "", answers[0])
	assert.Equal(t, "old", answers[1])
	assert.Equal(t, "Yes, used Terraform for three production deployments", answers[2])
}

func TestApplyUpdates_IgnoresBlankAndOutOfRange(t *testing.T) {
	answers := []string{"keep"}

	ApplyUpdates(answers, []*string{strPtr("   "), strPtr("overflow"), strPtr("more")})
	assert.Equal(t, []string{"keep"}, answers)
}

func TestApplyUpdates_TrimsValues(t *testing.T) {
	answers := []string{""}

	ApplyUpdates(answers, []*string{strPtr("  padded  ")})
	assert.Equal(t, "padded", answers[0])
}

func TestAllAnswered(t *testing.T) {
	assert.False(t, AllAnswered(nil, nil), "empty question list is never all answered")
	assert.False(t, AllAnswered([]string{"q"}, []string{""}))
	assert.False(t, AllAnswered([]string{"q"}, []string{"  "}))
	assert.False(t, AllAnswered([]string{"q1", "q2"}, []string{"a"}), "length mismatch")
	assert.True(t, AllAnswered([]string{"q1", "q2"}, []string{"a1", "a2"}))
}

func TestLedgerInvariant_AfterReconcileAndUpdates(t *testing.T) {
	state := types.NewConversationState()
	state.SectionObjects[types.SectionSkills] = types.SectionMeta{
		RecommendedQuestions: []string{"q1", "q2", "q3"},
	}

	meta := state.SectionObjects[types.SectionSkills]
	answers := Reconcile(types.SectionSkills, meta.RecommendedQuestions, state.RecommendedAnswers)
	ApplyUpdates(answers, []*string{strPtr("a1")})

	require.NoError(t, state.CheckInvariants())

	// Question set changes; reconcile restores the invariant.
	meta.RecommendedQuestions = []string{"q1", "q2"}
	state.SectionObjects[types.SectionSkills] = meta
	Reconcile(types.SectionSkills, meta.RecommendedQuestions, state.RecommendedAnswers)
	require.NoError(t, state.CheckInvariants())
	assert.Equal(t, []string{"a1", ""}, state.RecommendedAnswers[types.SectionSkills])
}
