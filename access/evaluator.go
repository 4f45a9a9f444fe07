// Package access decides whether an actor may perform an action on a project.
// Everything here is pure: no I/O, no panics, no global state besides the
// denial counter bumped by Require.
package access

import (
	"github.com/samber/lo"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/metrics"
	"github.com/grantdesk-api/models"
)

// Capability is a named permission level evaluated against an actor-project pair
type Capability string

const (
	CapView   Capability = "view"
	CapEdit   Capability = "edit"
	CapAdmin  Capability = "admin"  // member management
	CapDelete Capability = "delete" // project removal
)

// Actor is the authenticated caller. It is passed explicitly to every check.
type Actor struct {
	UserID string
	Role   models.Role
}

// memberGrants lists, per capability, which member roles are granted it.
// The owner is granted every capability; delete has no member grant.
var memberGrants = map[Capability]func(models.MemberRole) bool{
	CapView: func(r models.MemberRole) bool { return r.Valid() },
	CapEdit: func(r models.MemberRole) bool {
		return r == models.MemberRoleEditor || r == models.MemberRoleAdmin
	},
	CapAdmin:  func(r models.MemberRole) bool { return r == models.MemberRoleAdmin },
	CapDelete: func(models.MemberRole) bool { return false },
}

// IsOwner reports whether actor owns project
func IsOwner(actor Actor, project *models.Project) bool {
	return project != nil && actor.UserID != "" && project.OwnerID == actor.UserID
}

// MemberRole returns the actor's role in project, if the actor is a member
func MemberRole(actor Actor, project *models.Project) (models.MemberRole, bool) {
	if project == nil || actor.UserID == "" {
		return "", false
	}
	m, ok := lo.Find(project.Members, func(m models.ProjectMember) bool {
		return m.UserID == actor.UserID
	})
	return m.Role, ok
}

// Can reports whether actor holds capability on project
func Can(actor Actor, project *models.Project, capability Capability) bool {
	grant, known := memberGrants[capability]
	if !known || project == nil || actor.UserID == "" {
		return false
	}
	if IsOwner(actor, project) {
		return true
	}
	role, ok := MemberRole(actor, project)
	return ok && grant(role)
}

// CanRemoveMember allows member managers, and any member removing themself
func CanRemoveMember(actor Actor, project *models.Project, targetUserID string) bool {
	if actor.UserID != "" && actor.UserID == targetUserID {
		return true
	}
	return Can(actor, project, CapAdmin)
}

// Require turns a denied check into a Forbidden error
func Require(actor Actor, project *models.Project, capability Capability) error {
	if Can(actor, project, capability) {
		return nil
	}
	metrics.AccessDenied.WithLabelValues(string(capability)).Inc()
	return apperr.Forbidden("you don't have %s permission on this project", capability)
}
