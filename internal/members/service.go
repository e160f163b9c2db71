package members

import (
	"context"
	"fmt"

	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// RepositoryPort defines data access methods for members.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]auth.UserRecord, error)
	GetUser(ctx context.Context, id string) (*auth.UserRecord, error)
	SetRole(ctx context.Context, id string, role auth.Role) (*auth.UserRecord, error)
}

// Service handles member management logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]auth.UserRecord, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser returns one user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*auth.UserRecord, error) {
	return s.repo.GetUser(ctx, id)
}

// SetRole changes a user's stored role. The role takes effect on the
// user's next request; nothing here invalidates prior authorization
// decisions because those are never cached.
func (s *Service) SetRole(ctx context.Context, id string, role auth.Role) (*auth.UserRecord, error) {
	if !auth.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", httpx.ErrValidation, role)
	}
	return s.repo.SetRole(ctx, id, role)
}
