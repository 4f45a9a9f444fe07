package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/ai"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/config"
	"github.com/grantdesk-api/database/dbtest"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/repositories"
)

type completion struct {
	Agent  models.Agent
	Prompt string
	Fields ai.ContextFields
}

// fakeCompleter answers every prompt with a fixed response
type fakeCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	calls    []completion
}

func (f *fakeCompleter) Complete(_ context.Context, agent models.Agent, prompt string, fields ai.ContextFields) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, completion{Agent: agent, Prompt: prompt, Fields: fields})
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type env struct {
	users    *repositories.UserRepository
	projects *repositories.ProjectRepository
	ideaRepo *repositories.IdeaRepository
	appRepo  *repositories.ApplicationRepository

	ai           *fakeCompleter
	projectSvc   *ProjectService
	ideaSvc      *IdeaService
	appSvc       *ApplicationService
	lifecycle    Lifecycle
	reviewConfig config.ReviewDefaults
}

func newEnv(t *testing.T) *env {
	return newEnvWith(t, Lifecycle{})
}

func newEnvWith(t *testing.T, lifecycle Lifecycle) *env {
	t.Helper()
	db := dbtest.Open(t)

	e := &env{
		users:        repositories.NewUserRepository(db),
		projects:     repositories.NewProjectRepository(db),
		ideaRepo:     repositories.NewIdeaRepository(db),
		appRepo:      repositories.NewApplicationRepository(db),
		ai:           &fakeCompleter{response: "AI says hello"},
		lifecycle:    lifecycle,
		reviewConfig: config.DefaultAgents().Review,
	}
	e.projectSvc = NewProjectService(e.projects, e.users)
	e.ideaSvc = NewIdeaService(e.ideaRepo, e.projects, e.ai, DefaultScorePolicy(), lifecycle)
	e.appSvc = NewApplicationService(e.appRepo, e.ideaRepo, e.projects, e.ai, DefaultScorePolicy(), lifecycle, e.reviewConfig)
	return e
}

func (e *env) user(t *testing.T, name string) access.Actor {
	t.Helper()
	u := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hash",
		Role:     models.RoleUser,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return access.Actor{UserID: u.ID, Role: u.Role}
}

func (e *env) project(t *testing.T, owner access.Actor) *models.Project {
	t.Helper()
	p, err := e.projectSvc.CreateProject(context.Background(), owner, dto.CreateProjectRequest{
		Name:        "Green data centres",
		Description: "Cutting energy use of regional data centres",
		Domain:      "energy",
	})
	require.NoError(t, err)
	return p
}

func (e *env) member(t *testing.T, owner access.Actor, project *models.Project, name string, role models.MemberRole) access.Actor {
	t.Helper()
	actor := e.user(t, name)
	_, err := e.projectSvc.AddMember(context.Background(), owner, project.ID, name+"@example.com", string(role))
	require.NoError(t, err)
	return actor
}

func (e *env) idea(t *testing.T, actor access.Actor, project *models.Project) *models.Idea {
	t.Helper()
	idea, err := e.ideaSvc.Create(context.Background(), actor, project.ID, dto.CreateIdeaRequest{
		Title:       "Heat reuse",
		Description: "Pipe waste heat into district heating",
	})
	require.NoError(t, err)
	return idea
}

func errKind(err error) apperr.Kind {
	if err == nil {
		return ""
	}
	return apperr.KindOf(err)
}

var errProvider = errors.New("provider unavailable")

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
