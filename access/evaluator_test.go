package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/models"
)

func testProject() *models.Project {
	return &models.Project{
		ID:      "p1",
		OwnerID: "owner",
		Members: []models.ProjectMember{
			{UserID: "viewer", Role: models.MemberRoleViewer},
			{UserID: "editor", Role: models.MemberRoleEditor},
			{UserID: "admin", Role: models.MemberRoleAdmin},
			{UserID: "bogus", Role: models.MemberRole("superuser")},
		},
	}
}

func TestCanMatrix(t *testing.T) {
	p := testProject()
	tests := []struct {
		user string
		want map[Capability]bool
	}{
		{"owner", map[Capability]bool{CapView: true, CapEdit: true, CapAdmin: true, CapDelete: true}},
		{"admin", map[Capability]bool{CapView: true, CapEdit: true, CapAdmin: true, CapDelete: false}},
		{"editor", map[Capability]bool{CapView: true, CapEdit: true, CapAdmin: false, CapDelete: false}},
		{"viewer", map[Capability]bool{CapView: true, CapEdit: false, CapAdmin: false, CapDelete: false}},
		{"bogus", map[Capability]bool{CapView: false, CapEdit: false, CapAdmin: false, CapDelete: false}},
		{"stranger", map[Capability]bool{CapView: false, CapEdit: false, CapAdmin: false, CapDelete: false}},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			actor := Actor{UserID: tt.user, Role: models.RoleUser}
			for capability, want := range tt.want {
				assert.Equal(t, want, Can(actor, p, capability), "capability %s", capability)
			}
		})
	}
}

func TestDeleteIsOwnerOnly(t *testing.T) {
	p := testProject()
	for _, m := range p.Members {
		assert.False(t, Can(Actor{UserID: m.UserID}, p, CapDelete), m.UserID)
	}
	// platform admins get no project bypass
	assert.False(t, Can(Actor{UserID: "root", Role: models.RoleAdmin}, p, CapDelete))
	assert.True(t, Can(Actor{UserID: "owner"}, p, CapDelete))
}

func TestOwnerWithoutMembers(t *testing.T) {
	p := &models.Project{ID: "p2", OwnerID: "owner"}
	for _, c := range []Capability{CapView, CapEdit, CapAdmin, CapDelete} {
		assert.True(t, Can(Actor{UserID: "owner"}, p, c))
	}
}

func TestUnknownInputsDenied(t *testing.T) {
	p := testProject()
	assert.False(t, Can(Actor{UserID: "owner"}, p, Capability("launch")))
	assert.False(t, Can(Actor{}, p, CapView))
	assert.False(t, Can(Actor{UserID: "owner"}, nil, CapView))

	// an empty owner id must not match an anonymous actor
	assert.False(t, Can(Actor{}, &models.Project{}, CapView))
}

func TestCanRemoveMember(t *testing.T) {
	p := testProject()
	assert.True(t, CanRemoveMember(Actor{UserID: "viewer"}, p, "viewer"), "self removal")
	assert.False(t, CanRemoveMember(Actor{UserID: "viewer"}, p, "editor"))
	assert.False(t, CanRemoveMember(Actor{UserID: "editor"}, p, "viewer"))
	assert.True(t, CanRemoveMember(Actor{UserID: "admin"}, p, "editor"))
	assert.True(t, CanRemoveMember(Actor{UserID: "owner"}, p, "admin"))
}

func TestRequire(t *testing.T) {
	p := testProject()
	require.NoError(t, Require(Actor{UserID: "editor"}, p, CapEdit))

	err := Require(Actor{UserID: "viewer"}, p, CapEdit)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
