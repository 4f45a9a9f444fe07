package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/models"
)

func TestIdeaTransitions(t *testing.T) {
	strict := Lifecycle{}
	reopen := Lifecycle{AllowReopen: true}

	tests := []struct {
		from, to       models.IdeaStatus
		strict, reopen bool
	}{
		{models.IdeaStatusDraft, models.IdeaStatusPending, true, true},
		{models.IdeaStatusDraft, models.IdeaStatusReviewed, true, true},
		{models.IdeaStatusPending, models.IdeaStatusReviewed, true, true},
		{models.IdeaStatusReviewed, models.IdeaStatusReviewed, true, true},
		{models.IdeaStatusReviewed, models.IdeaStatusApproved, true, true},
		{models.IdeaStatusReviewed, models.IdeaStatusRejected, true, true},
		{models.IdeaStatusDraft, models.IdeaStatusApproved, false, false},
		{models.IdeaStatusPending, models.IdeaStatusDraft, false, false},
		{models.IdeaStatusApproved, models.IdeaStatusReviewed, false, true},
		{models.IdeaStatusRejected, models.IdeaStatusReviewed, false, true},
		{models.IdeaStatusApproved, models.IdeaStatusRejected, false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.strict, strict.CanMoveIdea(tt.from, tt.to), "strict %s->%s", tt.from, tt.to)
		assert.Equal(t, tt.reopen, reopen.CanMoveIdea(tt.from, tt.to), "reopen %s->%s", tt.from, tt.to)
	}
}

func TestApplicationTransitions(t *testing.T) {
	strict := Lifecycle{}
	reopen := Lifecycle{AllowReopen: true}

	tests := []struct {
		from, to       models.ApplicationStatus
		strict, reopen bool
	}{
		{models.ApplicationStatusDraft, models.ApplicationStatusReview, true, true},
		{models.ApplicationStatusReview, models.ApplicationStatusReview, true, true},
		{models.ApplicationStatusReview, models.ApplicationStatusFinalized, true, true},
		{models.ApplicationStatusFinalized, models.ApplicationStatusSubmitted, true, true},
		{models.ApplicationStatusDraft, models.ApplicationStatusFinalized, false, false},
		{models.ApplicationStatusDraft, models.ApplicationStatusSubmitted, false, false},
		{models.ApplicationStatusFinalized, models.ApplicationStatusReview, false, true},
		{models.ApplicationStatusSubmitted, models.ApplicationStatusReview, false, true},
		{models.ApplicationStatusSubmitted, models.ApplicationStatusDraft, false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.strict, strict.CanMoveApplication(tt.from, tt.to), "strict %s->%s", tt.from, tt.to)
		assert.Equal(t, tt.reopen, reopen.CanMoveApplication(tt.from, tt.to), "reopen %s->%s", tt.from, tt.to)
	}
}

func TestRequireTransitionIsConflict(t *testing.T) {
	err := Lifecycle{}.requireIdea(models.IdeaStatusApproved, models.IdeaStatusReviewed)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, Lifecycle{}.requireApplication(models.ApplicationStatusDraft, models.ApplicationStatusReview))
}

func TestScorePolicy(t *testing.T) {
	fixed := DefaultScorePolicy()
	assert.Equal(t, 7, fixed.IdeaScore("Score: 9"))
	assert.Equal(t, 75, fixed.ApplicationScore("Score: 90"))

	parsing := ScorePolicy{IdeaDefault: 7, ApplicationDefault: 75, ParseFromResponse: true}
	assert.Equal(t, 9, parsing.IdeaScore("Overall I would give it 9/10."))
	assert.Equal(t, 6, parsing.IdeaScore("score: 6"))
	assert.Equal(t, 10, parsing.IdeaScore("Score = 42"))
	assert.Equal(t, 7, parsing.IdeaScore("no number here"))
	assert.Equal(t, 82, parsing.ApplicationScore("Total: 82/100"))
	assert.Equal(t, 100, parsing.ApplicationScore("Score: 450"))
	assert.Equal(t, 75, parsing.ApplicationScore("good work"))

	outOfRange := ScorePolicy{IdeaDefault: 15, ApplicationDefault: -3}
	assert.Equal(t, 10, outOfRange.IdeaScore(""))
	assert.Equal(t, 0, outOfRange.ApplicationScore(""))
}
