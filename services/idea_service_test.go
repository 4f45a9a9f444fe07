package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
)

func TestEditorCreatesAndEvaluatesIdea(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	project := e.project(t, alice)
	bob := e.member(t, alice, project, "bob", models.MemberRoleEditor)

	idea := e.idea(t, bob, project)
	assert.Equal(t, models.IdeaStatusDraft, idea.Status)
	assert.Equal(t, bob.UserID, idea.CreatorID)
	assert.Equal(t, project.ID, idea.ProjectID)

	e.ai.response = "Looks promising"
	res, err := e.ideaSvc.Evaluate(ctx, bob, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "M1"})
	require.NoError(t, err)
	assert.Equal(t, "Looks promising", res.Response)

	stored, err := e.ideaSvc.Get(ctx, alice, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IdeaStatusReviewed, stored.Status)
	require.Len(t, stored.Conversations, 2)
	assert.Equal(t, models.AgentUser, stored.Conversations[0].Agent)
	assert.Equal(t, "M1", stored.Conversations[0].Message)
	assert.Equal(t, models.AgentArvioija, stored.Conversations[1].Agent)
	assert.Equal(t, "Looks promising", stored.Conversations[1].Message)
	require.Len(t, stored.Reviews, 1)
	assert.Equal(t, models.ReviewerAI, stored.Reviews[0].Reviewer)
	assert.Equal(t, 7, stored.Reviews[0].Score)

	require.Len(t, e.ai.calls, 1)
	call := e.ai.calls[0]
	assert.Equal(t, models.AgentArvioija, call.Agent)
	assert.Contains(t, call.Fields.IdeaDetails, "Heat reuse")
	assert.Contains(t, call.Fields.ProjectDetails, "Domain: energy")
}

func TestEvaluateAppendsHistory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	project := e.project(t, owner)
	viewer := e.member(t, owner, project, "viewer", models.MemberRoleViewer)
	idea := e.idea(t, owner, project)

	for i := 1; i <= 3; i++ {
		res, err := e.ideaSvc.Evaluate(ctx, viewer, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "again"})
		require.NoError(t, err)
		assert.Len(t, res.Idea.Reviews, i)
		assert.Len(t, res.Idea.Conversations, 2*i)
	}
}

func TestEvaluateFailureLeavesIdeaUnchanged(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	project := e.project(t, owner)
	idea := e.idea(t, owner, project)

	e.ai.err = errProvider
	_, err := e.ideaSvc.Evaluate(ctx, owner, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "M1"})
	assert.Equal(t, apperr.KindServiceError, errKind(err))

	stored, err := e.ideaSvc.Get(ctx, owner, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IdeaStatusDraft, stored.Status)
	assert.Empty(t, stored.Reviews)
	assert.Empty(t, stored.Conversations)
}

func TestEvaluateAccessChecks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	outsider := e.user(t, "outsider")
	project := e.project(t, owner)
	idea := e.idea(t, owner, project)

	_, err := e.ideaSvc.Evaluate(ctx, outsider, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "M1"})
	assert.Equal(t, apperr.KindForbidden, errKind(err))

	_, err = e.ideaSvc.Evaluate(ctx, outsider, dto.EvaluateIdeaRequest{IdeaID: "00000000-0000-0000-0000-000000000000", Message: "M1"})
	assert.Equal(t, apperr.KindNotFound, errKind(err))

	assert.Empty(t, e.ai.calls)
}

func TestViewerCannotEditIdeas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	project := e.project(t, owner)
	viewer := e.member(t, owner, project, "viewer", models.MemberRoleViewer)

	_, err := e.ideaSvc.Create(ctx, viewer, project.ID, dto.CreateIdeaRequest{Title: "x", Description: "y"})
	assert.Equal(t, apperr.KindForbidden, errKind(err))

	idea := e.idea(t, owner, project)
	title := "changed"
	_, err = e.ideaSvc.Update(ctx, viewer, idea.ID, dto.UpdateIdeaRequest{Title: &title})
	assert.Equal(t, apperr.KindForbidden, errKind(err))
	assert.Equal(t, apperr.KindForbidden, errKind(e.ideaSvc.Delete(ctx, viewer, idea.ID)))

	ideas, err := e.ideaSvc.ListByProject(ctx, viewer, project.ID, "")
	require.NoError(t, err)
	assert.Len(t, ideas, 1)
}

func TestIdeaLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	project := e.project(t, owner)
	editor := e.member(t, owner, project, "editor", models.MemberRoleEditor)
	idea := e.idea(t, editor, project)

	submitted, err := e.ideaSvc.Submit(ctx, editor, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IdeaStatusPending, submitted.Status)

	_, err = e.ideaSvc.Submit(ctx, editor, idea.ID)
	assert.Equal(t, apperr.KindConflict, errKind(err))

	// deciding before a review is an illegal transition
	_, err = e.ideaSvc.Decide(ctx, owner, idea.ID, "approved")
	assert.Equal(t, apperr.KindConflict, errKind(err))

	_, err = e.ideaSvc.Evaluate(ctx, editor, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "M1"})
	require.NoError(t, err)

	_, err = e.ideaSvc.Decide(ctx, editor, idea.ID, "approved")
	assert.Equal(t, apperr.KindForbidden, errKind(err))
	_, err = e.ideaSvc.Decide(ctx, owner, idea.ID, "pending")
	assert.Equal(t, apperr.KindInvalidArgument, errKind(err))

	approved, err := e.ideaSvc.Decide(ctx, owner, idea.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.IdeaStatusApproved, approved.Status)

	calls := len(e.ai.calls)
	_, err = e.ideaSvc.Evaluate(ctx, editor, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "M2"})
	assert.Equal(t, apperr.KindConflict, errKind(err))
	assert.Len(t, e.ai.calls, calls)

	approvedIdeas, err := e.ideaSvc.ListByProject(ctx, owner, project.ID, "approved")
	require.NoError(t, err)
	assert.Len(t, approvedIdeas, 1)

	_, err = e.ideaSvc.ListByProject(ctx, owner, project.ID, "shelved")
	assert.Equal(t, apperr.KindInvalidArgument, errKind(err))
}

func TestReopenAllowsReevaluation(t *testing.T) {
	e := newEnvWith(t, Lifecycle{AllowReopen: true})
	ctx := context.Background()
	owner := e.user(t, "owner")
	project := e.project(t, owner)
	idea := e.idea(t, owner, project)

	_, err := e.ideaSvc.Evaluate(ctx, owner, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "M1"})
	require.NoError(t, err)
	_, err = e.ideaSvc.Decide(ctx, owner, idea.ID, "rejected")
	require.NoError(t, err)

	res, err := e.ideaSvc.Evaluate(ctx, owner, dto.EvaluateIdeaRequest{IdeaID: idea.ID, Message: "M2"})
	require.NoError(t, err)
	assert.Equal(t, models.IdeaStatusReviewed, res.Idea.Status)
	assert.Len(t, res.Idea.Reviews, 2)
}

func TestIdeateStoresGeneratedDraft(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	project := e.project(t, owner)
	viewer := e.member(t, owner, project, "viewer", models.MemberRoleViewer)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.ideaSvc.now = fixedClock(at)

	message := strings.Repeat("ä", 60)
	e.ai.response = "An idea about heat"
	res, err := e.ideaSvc.Ideate(ctx, viewer, dto.IdeateRequest{
		ProjectID: project.ID,
		Message:   message,
		Interests: []string{"ai", "energy"},
	})
	require.NoError(t, err)

	idea := res.Idea
	assert.Equal(t, "Idea: "+strings.Repeat("ä", 50)+"...", idea.Title)
	assert.Equal(t, "An idea about heat", idea.Description)
	assert.True(t, idea.IsAIGenerated)
	assert.Equal(t, models.IdeaStatusDraft, idea.Status)
	assert.Equal(t, viewer.UserID, idea.CreatorID)
	require.Len(t, idea.Conversations, 2)
	assert.Equal(t, models.AgentIdeanikkari, idea.Conversations[1].Agent)
	assert.True(t, idea.Conversations[0].CreatedAt.Equal(at))

	call := e.ai.calls[0]
	assert.Equal(t, models.AgentIdeanikkari, call.Agent)
	assert.Equal(t, "energy", call.Fields.Domain)
	assert.Equal(t, []string{"ai", "energy"}, call.Fields.Interests)
}

func TestIdeateOutsiderForbidden(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	outsider := e.user(t, "outsider")
	project := e.project(t, owner)

	_, err := e.ideaSvc.Ideate(context.Background(), outsider, dto.IdeateRequest{ProjectID: project.ID, Message: "x"})
	assert.Equal(t, apperr.KindForbidden, errKind(err))
	assert.Empty(t, e.ai.calls)
}
