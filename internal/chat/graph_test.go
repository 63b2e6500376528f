package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-coach/internal/types"
)

func TestRunTurn_RouteIntoSectionRunsEntryGreeting(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action": "route", "route": "skills", "answer": ""}`,
		`{"action": "stay", "answer": "Welcome to skills! Score: 55. 1. Which cloud providers have you used?"}`,
	}}
	engine := NewEngine(client)
	state := skillsState()
	state.AppendMessage(types.RoleUser, "let's work on skills")

	err := engine.RunTurn(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, types.SectionSkills, state.CurrentSection)
	assert.Len(t, client.calls, 2)

	trailing := state.LastAssistantMessages()
	require.Len(t, trailing, 1)
	assert.Contains(t, trailing[0].Content, "Welcome to skills")
}

func TestRunTurn_AnswerUpdatesLedgerOnFollowupTurn(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action": "stay", "answer": "Great, noted!", "updated_answers": [null, null, "Yes, used Terraform for three production deployments"]}`,
	}}
	engine := NewEngine(client)
	state := skillsState()
	state.CurrentSection = types.SectionSkills
	state.AppendMessage(types.RoleUser, "I've used Terraform in production")

	err := engine.RunTurn(context.Background(), state)

	require.NoError(t, err)
	answers := state.RecommendedAnswers[types.SectionSkills]
	require.Len(t, answers, 3)
	assert.Empty(t, answers[0])
	assert.Empty(t, answers[1])
	assert.Equal(t, "Yes, used Terraform for three production deployments", answers[2])
}

func TestRunTurn_UpdateThenConfirmThenApply(t *testing.T) {
	// One turn: section chat hands off to the updater, which stages a
	// proposal and returns to section chat, which ends the turn.
	client := &scriptedClient{replies: []string{
		`{"action": "trigger_updater", "answer": ""}`,
		`{"updated_content": "Go, Python, SQL, Terraform", "summary": "Added Terraform"}`,
		`{"action": "stay", "answer": ""}`,
	}}
	engine := NewEngine(client)
	state := skillsState()
	state.CurrentSection = types.SectionSkills
	state.RecommendedAnswers[types.SectionSkills] = []string{"AWS", "yes", "yes"}
	state.AppendMessage(types.RoleUser, "that's everything")

	err := engine.RunTurn(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "Go, Python, SQL, Terraform", state.ProposedSectionContent)

	// Next turn: the user confirms, the applier commits and re-analyzes.
	client.replies = append(client.replies,
		`{"action": "trigger_applier", "answer": ""}`,
		`{"alignment_score": 90, "missing_requirements": [], "recommended_questions": [], "analysis_summary": "Strong"}`,
		`{"action": "stay", "answer": ""}`,
	)
	state.AppendMessage(types.RoleUser, "apply")

	err = engine.RunTurn(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "Go, Python, SQL, Terraform", state.ResumeSections[types.SectionSkills])
	assert.Equal(t, 90, state.SectionObjects[types.SectionSkills].AlignmentScore)
	assert.Empty(t, state.RecommendedAnswers[types.SectionSkills])
	assert.Empty(t, state.ProposedSectionContent)
}

func TestRunTurn_ExitReturnsToGeneralGreeting(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action": "exit_section", "answer": "Back to the overview."}`,
		`{"action": "answer", "answer": "Here's where things stand overall."}`,
	}}
	engine := NewEngine(client)
	state := skillsState()
	state.CurrentSection = types.SectionSkills
	state.AppendMessage(types.RoleUser, "take me back")

	err := engine.RunTurn(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, types.SectionID(""), state.CurrentSection)
	trailing := state.LastAssistantMessages()
	require.Len(t, trailing, 2)
	assert.Equal(t, "Back to the overview.", trailing[0].Content)
	assert.Equal(t, "Here's where things stand overall.", trailing[1].Content)
}

func TestRunTurn_StepCapBoundsFaultLoops(t *testing.T) {
	// An oracle that always re-enters the current section would loop
	// forever without the step cap.
	replies := make([]string, maxTurnSteps+4)
	for i := range replies {
		replies[i] = `{"action": "switch_section", "target_section": "skills", "answer": "still here"}`
	}
	client := &scriptedClient{replies: replies}
	engine := NewEngine(client)
	state := skillsState()
	state.CurrentSection = types.SectionSkills
	state.AppendMessage(types.RoleUser, "skills please")

	err := engine.RunTurn(context.Background(), state)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(client.calls), maxTurnSteps)
	assert.NoError(t, state.CheckInvariants())
}

func TestRunTurn_OfflineStyleTurnSucceeds(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action": "answer", "route": null, "answer": "(Offline) I received your query and will help once an API key is configured."}`,
	}}
	engine := NewEngine(client)
	state := skillsState()
	state.AppendMessage(types.RoleUser, "hello")

	err := engine.RunTurn(context.Background(), state)

	require.NoError(t, err)
	assert.Contains(t, state.LastMessage().Content, "(Offline)")
}
