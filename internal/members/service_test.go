package members

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/platform/httpx"
)

type mockRepository struct {
	users map[string]*auth.UserRecord
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*auth.UserRecord)}
}

func (m *mockRepository) ListUsers(ctx context.Context) ([]auth.UserRecord, error) {
	out := make([]auth.UserRecord, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) GetUser(ctx context.Context, id string) (*auth.UserRecord, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) SetRole(ctx context.Context, id string, role auth.Role) (*auth.UserRecord, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	u.Role = role
	copied := *u
	return &copied, nil
}

func TestSetRole(t *testing.T) {
	repo := newMockRepository()
	repo.users["u1"] = &auth.UserRecord{ID: "u1", Email: "m@test.local", Role: auth.RoleMember}
	svc := NewService(repo)

	updated, err := svc.SetRole(context.Background(), "u1", auth.RoleOfficer)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleOfficer, updated.Role)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	repo := newMockRepository()
	repo.users["u1"] = &auth.UserRecord{ID: "u1", Email: "m@test.local", Role: auth.RoleMember}
	svc := NewService(repo)

	_, err := svc.SetRole(context.Background(), "u1", auth.Role("superuser"))
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Equal(t, auth.RoleMember, repo.users["u1"].Role, "role must not change on validation failure")
}

func TestSetRoleUnknownUser(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.SetRole(context.Background(), "missing", auth.RoleAdmin)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
