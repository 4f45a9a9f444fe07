package models

import "fmt"

// Role represents platform-wide user role types
type Role string

const (
	RoleUser   Role = "user"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known platform roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleMember, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a raw string into a Role, rejecting unknown values
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid user role %q", s)
	}
	return r, nil
}

// MemberRole is the role of a non-owner member inside a project
type MemberRole string

const (
	MemberRoleViewer MemberRole = "viewer"
	MemberRoleEditor MemberRole = "editor"
	MemberRoleAdmin  MemberRole = "admin"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleViewer, MemberRoleEditor, MemberRoleAdmin:
		return true
	}
	return false
}

// ParseMemberRole converts a raw string into a MemberRole, rejecting unknown values
func ParseMemberRole(s string) (MemberRole, error) {
	r := MemberRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid member role %q", s)
	}
	return r, nil
}

// ProjectStatus tracks where a project is in the grant workflow
type ProjectStatus string

const (
	ProjectStatusDraft       ProjectStatus = "draft"
	ProjectStatusIdea        ProjectStatus = "idea"
	ProjectStatusEvaluation  ProjectStatus = "evaluation"
	ProjectStatusApplication ProjectStatus = "application"
	ProjectStatusReview      ProjectStatus = "review"
	ProjectStatusCompleted   ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusIdea, ProjectStatusEvaluation,
		ProjectStatusApplication, ProjectStatusReview, ProjectStatusCompleted:
		return true
	}
	return false
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid project status %q", s)
	}
	return st, nil
}

// IdeaStatus is the lifecycle state of an idea
type IdeaStatus string

const (
	IdeaStatusDraft    IdeaStatus = "draft"
	IdeaStatusPending  IdeaStatus = "pending"
	IdeaStatusReviewed IdeaStatus = "reviewed"
	IdeaStatusApproved IdeaStatus = "approved"
	IdeaStatusRejected IdeaStatus = "rejected"
)

func (s IdeaStatus) Valid() bool {
	switch s {
	case IdeaStatusDraft, IdeaStatusPending, IdeaStatusReviewed,
		IdeaStatusApproved, IdeaStatusRejected:
		return true
	}
	return false
}

func ParseIdeaStatus(s string) (IdeaStatus, error) {
	st := IdeaStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid idea status %q", s)
	}
	return st, nil
}

// ApplicationStatus is the lifecycle state of a funding application
type ApplicationStatus string

const (
	ApplicationStatusDraft     ApplicationStatus = "draft"
	ApplicationStatusReview    ApplicationStatus = "review"
	ApplicationStatusFinalized ApplicationStatus = "finalized"
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusDraft, ApplicationStatusReview,
		ApplicationStatusFinalized, ApplicationStatusSubmitted:
		return true
	}
	return false
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid application status %q", s)
	}
	return st, nil
}

// Agent names the participant of a conversation entry
type Agent string

const (
	AgentIdeanikkari Agent = "ideanikkari" // ideation
	AgentArvioija    Agent = "arvioija"    // idea evaluator
	AgentHakija      Agent = "hakija"      // application writer
	AgentRahoittaja  Agent = "rahoittaja"  // funder reviewer
	AgentUser        Agent = "user"
)

func (a Agent) Valid() bool {
	switch a {
	case AgentIdeanikkari, AgentArvioija, AgentHakija, AgentRahoittaja, AgentUser:
		return true
	}
	return false
}

// IsAI reports whether the agent is backed by the completion service
func (a Agent) IsAI() bool {
	return a.Valid() && a != AgentUser
}

// ParseAgent converts a raw string into an Agent, rejecting unknown values
func ParseAgent(s string) (Agent, error) {
	a := Agent(s)
	if !a.Valid() {
		return "", fmt.Errorf("invalid agent %q", s)
	}
	return a, nil
}

// ReviewerKind tags who produced a review
type ReviewerKind string

const (
	ReviewerUser ReviewerKind = "user"
	ReviewerAI   ReviewerKind = "ai"
)

func (k ReviewerKind) Valid() bool {
	return k == ReviewerUser || k == ReviewerAI
}
