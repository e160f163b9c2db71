package projects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

type mockRepository struct {
	projects   map[int64]*Project
	team       map[int64][]TeamMember
	milestones map[int64][]Milestone
	nextID     int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects:   make(map[int64]*Project),
		team:       make(map[int64][]TeamMember),
		milestones: make(map[int64][]Milestone),
		nextID:     1,
	}
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Project, error) {
	out := make([]Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, project Project) (*Project, error) {
	project.ID = m.nextID
	m.nextID++
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	m.projects[project.ID] = &project
	copied := project
	return &copied, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]any) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		p.Name = name
	}
	if status, ok := updates["status"].(string); ok {
		p.Status = status
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.projects[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockRepository) ListTeam(ctx context.Context, projectID int64) ([]TeamMember, error) {
	return m.team[projectID], nil
}

func (m *mockRepository) AddTeamMember(ctx context.Context, member TeamMember) error {
	m.team[member.ProjectID] = append(m.team[member.ProjectID], member)
	return nil
}

func (m *mockRepository) RemoveTeamMember(ctx context.Context, projectID int64, userID string) error {
	members := m.team[projectID]
	for i, member := range members {
		if member.UserID == userID {
			m.team[projectID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return httpx.ErrNotFound
}

func (m *mockRepository) ListMilestones(ctx context.Context, projectID int64) ([]Milestone, error) {
	return m.milestones[projectID], nil
}

func (m *mockRepository) CreateMilestone(ctx context.Context, milestone Milestone) (*Milestone, error) {
	milestone.ID = m.nextID
	m.nextID++
	m.milestones[milestone.ProjectID] = append(m.milestones[milestone.ProjectID], milestone)
	copied := milestone
	return &copied, nil
}

func (m *mockRepository) SetMilestoneDone(ctx context.Context, projectID, id int64, done bool) (*Milestone, error) {
	for i, ms := range m.milestones[projectID] {
		if ms.ID == id {
			m.milestones[projectID][i].Done = done
			copied := m.milestones[projectID][i]
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func TestCreateProjectStartsActive(t *testing.T) {
	svc := NewService(newMockRepository())

	project, err := svc.Create(context.Background(), CreateProjectRequest{
		Name:    "Club Website",
		Summary: "Rebuild of the public site.",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, project.Status)
}

func TestAddTeamMemberRequiresProject(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	err := svc.AddTeamMember(context.Background(), 99, AddTeamMemberRequest{UserID: "u1", Role: "lead"})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
	assert.Empty(t, repo.team[99])
}

func TestDeleteProject(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	project, err := svc.Create(context.Background(), CreateProjectRequest{Name: "Club Website", Summary: "Rebuild."})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), project.ID))
	_, err = svc.Get(context.Background(), project.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), project.ID), httpx.ErrNotFound)
}

func TestTeamMembership(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	project, err := svc.Create(context.Background(), CreateProjectRequest{Name: "Club Website", Summary: "Rebuild."})
	require.NoError(t, err)

	require.NoError(t, svc.AddTeamMember(context.Background(), project.ID, AddTeamMemberRequest{UserID: "u1", Role: "lead"}))
	team, err := svc.ListTeam(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "u1", team[0].UserID)

	require.NoError(t, svc.RemoveTeamMember(context.Background(), project.ID, "u1"))
	team, err = svc.ListTeam(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Empty(t, team)
}

func TestMilestones(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	project, err := svc.Create(context.Background(), CreateProjectRequest{Name: "Club Website", Summary: "Rebuild."})
	require.NoError(t, err)

	_, err = svc.CreateMilestone(context.Background(), 99, CreateMilestoneRequest{Title: "MVP", DueOn: time.Now().AddDate(0, 1, 0)})
	assert.ErrorIs(t, err, httpx.ErrNotFound, "milestone needs an existing project")

	ms, err := svc.CreateMilestone(context.Background(), project.ID, CreateMilestoneRequest{Title: "MVP", DueOn: time.Now().AddDate(0, 1, 0)})
	require.NoError(t, err)
	assert.False(t, ms.Done)

	done, err := svc.SetMilestoneDone(context.Background(), project.ID, ms.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Done)
}
