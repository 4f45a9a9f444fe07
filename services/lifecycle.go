package services

import (
	"slices"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/metrics"
	"github.com/grantdesk-api/models"
)

// transitions lists, per status, the statuses it may move to
type transitions[S ~string] map[S][]S

func (t transitions[S]) allows(from, to S) bool {
	return slices.Contains(t[from], to)
}

var (
	ideaFlow = transitions[models.IdeaStatus]{
		models.IdeaStatusDraft:    {models.IdeaStatusPending, models.IdeaStatusReviewed},
		models.IdeaStatusPending:  {models.IdeaStatusReviewed},
		models.IdeaStatusReviewed: {models.IdeaStatusReviewed, models.IdeaStatusApproved, models.IdeaStatusRejected},
	}
	ideaReopen = transitions[models.IdeaStatus]{
		models.IdeaStatusApproved: {models.IdeaStatusReviewed},
		models.IdeaStatusRejected: {models.IdeaStatusReviewed},
	}

	applicationFlow = transitions[models.ApplicationStatus]{
		models.ApplicationStatusDraft:     {models.ApplicationStatusReview},
		models.ApplicationStatusReview:    {models.ApplicationStatusReview, models.ApplicationStatusFinalized},
		models.ApplicationStatusFinalized: {models.ApplicationStatusSubmitted},
	}
	applicationReopen = transitions[models.ApplicationStatus]{
		models.ApplicationStatusFinalized: {models.ApplicationStatusReview},
		models.ApplicationStatusSubmitted: {models.ApplicationStatusReview},
	}
)

// Lifecycle guards idea and application status changes. Approved, rejected
// and submitted have no outgoing edges unless AllowReopen is set, which lets
// an evaluation or review run on them again.
type Lifecycle struct {
	AllowReopen bool
}

// CanMoveIdea reports whether an idea may go from one status to another
func (l Lifecycle) CanMoveIdea(from, to models.IdeaStatus) bool {
	return ideaFlow.allows(from, to) || (l.AllowReopen && ideaReopen.allows(from, to))
}

// CanMoveApplication reports whether an application may go from one status to another
func (l Lifecycle) CanMoveApplication(from, to models.ApplicationStatus) bool {
	return applicationFlow.allows(from, to) || (l.AllowReopen && applicationReopen.allows(from, to))
}

func (l Lifecycle) requireIdea(from, to models.IdeaStatus) error {
	if !l.CanMoveIdea(from, to) {
		return apperr.Conflict("idea cannot move from %s to %s", from, to)
	}
	return nil
}

func (l Lifecycle) requireApplication(from, to models.ApplicationStatus) error {
	if !l.CanMoveApplication(from, to) {
		return apperr.Conflict("application cannot move from %s to %s", from, to)
	}
	return nil
}

func countTransition(entity, to string) {
	metrics.LifecycleTransitions.WithLabelValues(entity, to).Inc()
}
